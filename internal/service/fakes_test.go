package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/pkg/ai"
)

type memoryTeacherRepo struct {
	teachers map[uint]models.Teacher
	nextID   uint
}

func newMemoryTeacherRepo() *memoryTeacherRepo {
	return &memoryTeacherRepo{teachers: make(map[uint]models.Teacher), nextID: 1}
}

func (m *memoryTeacherRepo) GetByUsername(ctx context.Context, username string) (models.Teacher, error) {
	for _, teacher := range m.teachers {
		if teacher.Username == username {
			return teacher, nil
		}
	}
	return models.Teacher{}, gorm.ErrRecordNotFound
}

func (m *memoryTeacherRepo) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return models.Teacher{}, gorm.ErrRecordNotFound
	}
	return teacher, nil
}

func (m *memoryTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = m.nextID
	m.teachers[m.nextID] = *teacher
	m.nextID++
	return nil
}

func (m *memoryTeacherRepo) EnsureDefault(ctx context.Context, teacher *models.Teacher) error {
	if existing, err := m.GetByUsername(ctx, teacher.Username); err == nil {
		*teacher = existing
		return nil
	}
	return m.Create(ctx, teacher)
}

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	attachments map[uint][]models.Attachment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{
		assignments: make(map[uint]models.Assignment),
		attachments: make(map[uint][]models.Attachment),
		nextID:      1,
	}
}

func (m *memoryAssignmentRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		if assignment.TeacherID == teacherID {
			results = append(results, m.withAttachments(assignment))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return m.withAttachments(assignment), nil
}

func (m *memoryAssignmentRepo) GetByCode(ctx context.Context, code string) (models.Assignment, error) {
	for _, assignment := range m.assignments {
		if assignment.Code == code {
			return m.withAttachments(assignment), nil
		}
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = m.nextID
	assignment.CreatedAt = time.Now()
	m.assignments[m.nextID] = *assignment
	m.nextID++
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) AddAttachment(ctx context.Context, attachment *models.Attachment) error {
	attachment.ID = uint(len(m.attachments[attachment.AssignmentID]) + 1)
	m.attachments[attachment.AssignmentID] = append(m.attachments[attachment.AssignmentID], *attachment)
	return nil
}

func (m *memoryAssignmentRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := m.GetByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *memoryAssignmentRepo) withAttachments(assignment models.Assignment) models.Assignment {
	assignment.Attachments = m.attachments[assignment.ID]
	return assignment
}

type memorySubmissionRepo struct {
	assignments *memoryAssignmentRepo
	submissions map[uint]models.Submission
	feedbacks   map[uint][]models.QuestionFeedback
	nextID      uint
}

func newMemorySubmissionRepo(assignments *memoryAssignmentRepo) *memorySubmissionRepo {
	return &memorySubmissionRepo{
		assignments: assignments,
		submissions: make(map[uint]models.Submission),
		feedbacks:   make(map[uint][]models.QuestionFeedback),
		nextID:      1,
	}
}

func (m *memorySubmissionRepo) ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Submission, error) {
	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if submission.AssignmentID == assignmentID {
			results = append(results, submission)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memorySubmissionRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Submission, error) {
	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		assignment, err := m.assignments.GetByID(ctx, submission.AssignmentID)
		if err == nil && assignment.TeacherID == teacherID {
			results = append(results, submission)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	submission, ok := m.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	if assignment, err := m.assignments.GetByID(ctx, submission.AssignmentID); err == nil {
		submission.Assignment = assignment
	}
	return submission, nil
}

func (m *memorySubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = m.nextID
	submission.CreatedAt = time.Now()
	m.submissions[m.nextID] = *submission
	m.nextID++
	return nil
}

func (m *memorySubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	if _, ok := m.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *submission
	stored.Assignment = models.Assignment{}
	m.submissions[submission.ID] = stored
	return nil
}

func (m *memorySubmissionRepo) CreateFeedback(ctx context.Context, feedback *models.QuestionFeedback) error {
	for _, existing := range m.feedbacks[feedback.SubmissionID] {
		if existing.QuestionNumber == feedback.QuestionNumber {
			return fmt.Errorf("duplicate question number %d", feedback.QuestionNumber)
		}
	}
	feedback.ID = uint(len(m.feedbacks[feedback.SubmissionID]) + 1)
	m.feedbacks[feedback.SubmissionID] = append(m.feedbacks[feedback.SubmissionID], *feedback)
	return nil
}

func (m *memorySubmissionRepo) ListFeedback(ctx context.Context, submissionID uint) ([]models.QuestionFeedback, error) {
	feedbacks := append([]models.QuestionFeedback(nil), m.feedbacks[submissionID]...)
	sort.Slice(feedbacks, func(i, j int) bool { return feedbacks[i].QuestionNumber < feedbacks[j].QuestionNumber })
	return feedbacks, nil
}

type memoryInterviewRepo struct {
	sessions  map[uint]models.InterviewSession
	questions map[uint][]models.InterviewQuestion
	nextID    uint
}

func newMemoryInterviewRepo() *memoryInterviewRepo {
	return &memoryInterviewRepo{
		sessions:  make(map[uint]models.InterviewSession),
		questions: make(map[uint][]models.InterviewQuestion),
		nextID:    1,
	}
}

func (m *memoryInterviewRepo) GetBySubmission(ctx context.Context, submissionID uint) (models.InterviewSession, error) {
	for _, session := range m.sessions {
		if session.SubmissionID == submissionID {
			session.Questions = append([]models.InterviewQuestion(nil), m.questions[session.ID]...)
			return session, nil
		}
	}
	return models.InterviewSession{}, gorm.ErrRecordNotFound
}

func (m *memoryInterviewRepo) Create(ctx context.Context, session *models.InterviewSession) error {
	session.ID = m.nextID
	m.sessions[m.nextID] = *session
	m.nextID++
	return nil
}

func (m *memoryInterviewRepo) Update(ctx context.Context, session *models.InterviewSession) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *session
	stored.Questions = nil
	m.sessions[session.ID] = stored
	return nil
}

func (m *memoryInterviewRepo) DeleteQuestions(ctx context.Context, interviewID uint) error {
	delete(m.questions, interviewID)
	return nil
}

func (m *memoryInterviewRepo) CreateQuestion(ctx context.Context, question *models.InterviewQuestion) error {
	question.ID = uint(len(m.questions[question.InterviewID]) + 1)
	m.questions[question.InterviewID] = append(m.questions[question.InterviewID], *question)
	return nil
}

func (m *memoryInterviewRepo) ListQuestions(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	return append([]models.InterviewQuestion(nil), m.questions[interviewID]...), nil
}

type memoryStudyPlanRepo struct {
	plans map[uint]models.StudyPlan
}

func newMemoryStudyPlanRepo() *memoryStudyPlanRepo {
	return &memoryStudyPlanRepo{plans: make(map[uint]models.StudyPlan)}
}

func (m *memoryStudyPlanRepo) GetBySubmission(ctx context.Context, submissionID uint) (models.StudyPlan, error) {
	plan, ok := m.plans[submissionID]
	if !ok {
		return models.StudyPlan{}, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (m *memoryStudyPlanRepo) Create(ctx context.Context, plan *models.StudyPlan) error {
	plan.ID = uint(len(m.plans) + 1)
	m.plans[plan.SubmissionID] = *plan
	return nil
}

type memoryFlowStore struct {
	states map[string]FlowState
	next   int
}

func newMemoryFlowStore() *memoryFlowStore {
	return &memoryFlowStore{states: make(map[string]FlowState)}
}

func (m *memoryFlowStore) Start(ctx context.Context, assignmentID uint) (string, error) {
	m.next++
	token := fmt.Sprintf("token-%d", m.next)
	m.states[token] = FlowState{AssignmentID: assignmentID}
	return token, nil
}

func (m *memoryFlowStore) Get(ctx context.Context, token string) (FlowState, error) {
	state, ok := m.states[token]
	if !ok {
		return FlowState{}, ErrFlowSessionNotFound
	}
	return state, nil
}

func (m *memoryFlowStore) SetSubmission(ctx context.Context, token string, submissionID uint) error {
	state, ok := m.states[token]
	if !ok {
		return ErrFlowSessionNotFound
	}
	state.SubmissionID = submissionID
	m.states[token] = state
	return nil
}

type fakeGateway struct {
	gradeFn     func(ctx context.Context, meta ai.AssignmentMeta, answerText string) (ai.WrittenFeedback, error)
	questionsFn func(ctx context.Context, meta ai.AssignmentMeta, weakAreas []string) ([]ai.InterviewQuestion, error)
	analyzeFn   func(ctx context.Context, meta ai.AssignmentMeta, writtenScore, duration int, transcript string) (ai.InterviewAnalysis, error)
	planFn      func(ctx context.Context, scores ai.ScoreSummary, weak, strong []ai.TopicResult, subScores ai.InterviewSubScores) (ai.StudyPlan, error)
}

func (f *fakeGateway) GradeWrittenWork(ctx context.Context, meta ai.AssignmentMeta, answerText string) (ai.WrittenFeedback, error) {
	if f.gradeFn == nil {
		return ai.WrittenFeedback{}, fmt.Errorf("grade not configured")
	}
	return f.gradeFn(ctx, meta, answerText)
}

func (f *fakeGateway) GenerateInterviewQuestions(ctx context.Context, meta ai.AssignmentMeta, weakAreas []string) ([]ai.InterviewQuestion, error) {
	if f.questionsFn == nil {
		return fiveQuestions(), nil
	}
	return f.questionsFn(ctx, meta, weakAreas)
}

func (f *fakeGateway) AnalyzeInterview(ctx context.Context, meta ai.AssignmentMeta, writtenScore, duration int, transcript string) (ai.InterviewAnalysis, error) {
	if f.analyzeFn == nil {
		return ai.InterviewAnalysis{}, fmt.Errorf("analyze not configured")
	}
	return f.analyzeFn(ctx, meta, writtenScore, duration, transcript)
}

func (f *fakeGateway) GenerateStudyPlan(ctx context.Context, scores ai.ScoreSummary, weak, strong []ai.TopicResult, subScores ai.InterviewSubScores) (ai.StudyPlan, error) {
	if f.planFn == nil {
		return ai.StudyPlan{}, fmt.Errorf("plan not configured")
	}
	return f.planFn(ctx, scores, weak, strong, subScores)
}

func fiveQuestions() []ai.InterviewQuestion {
	types := models.InterviewQuestionTypes()
	questions := make([]ai.InterviewQuestion, 0, len(types))
	for i, questionType := range types {
		questions = append(questions, ai.InterviewQuestion{
			Number:   i + 1,
			Type:     questionType,
			Question: fmt.Sprintf("question %d", i+1),
		})
	}
	return questions
}

type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filename string, media io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, media)
	return f.transcript, nil
}

type fakeUploader struct {
	uploads []string
	videos  []string
	err     error
}

func (f *fakeUploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, reader)
	f.uploads = append(f.uploads, name)
	return "https://files.test/" + name, nil
}

func (f *fakeUploader) UploadVideo(ctx context.Context, publicID string, reader io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, reader)
	f.videos = append(f.videos, publicID)
	return "https://media.test/" + publicID + ".webm", nil
}

type fakeFetcher struct {
	payload string
	err     error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader([]byte(f.payload))), nil
}

type recordingEvents struct {
	statuses []string
}

func (r *recordingEvents) PublishStatus(submissionID, assignmentID uint, status string) {
	r.statuses = append(r.statuses, status)
}

func (r *recordingEvents) last() string {
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}
