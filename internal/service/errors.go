package service

import "errors"

var (
	// ErrAssignmentNotFound indicates an assignment could not be found.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignmentInactive indicates the assignment no longer accepts submissions.
	ErrAssignmentInactive = errors.New("assignment is no longer active")
	// ErrSubmissionNotFound indicates a submission could not be found.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrAnswerRequired indicates neither answer text nor an answer file was provided.
	ErrAnswerRequired = errors.New("answer text or answer file is required")
	// ErrInterviewNotFound indicates no interview session exists for the submission.
	ErrInterviewNotFound = errors.New("interview session not found")
	// ErrInterviewNotReady indicates the session has no generated questions yet.
	ErrInterviewNotReady = errors.New("interview questions not generated")
	// ErrRecordingMissing indicates completion was attempted without a stored recording.
	ErrRecordingMissing = errors.New("no interview recording found")
	// ErrInvalidRecording indicates the capture payload violates the recording contract.
	ErrInvalidRecording = errors.New("invalid recording")
	// ErrInvalidFileType indicates an upload with a disallowed extension.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrFileTooLarge indicates an upload exceeding its size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrAIUnavailable indicates the AI gateway was not configured at startup.
	// The process stays alive; orchestration steps report this instead of
	// dereferencing an absent client.
	ErrAIUnavailable = errors.New("ai gateway not available, check api key configuration")
	// ErrInvalidCredentials indicates a failed teacher login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrFlowSessionNotFound indicates an expired or unknown student flow token.
	ErrFlowSessionNotFound = errors.New("flow session not found")
	// ErrStudyPlanNotFound indicates no study plan exists for the submission.
	ErrStudyPlanNotFound = errors.New("study plan not found")
)
