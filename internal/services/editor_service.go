package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eurouni/eurostudy/internal/models"
	mongorepo "github.com/eurouni/eurostudy/internal/repositories/mongo"
	"github.com/eurouni/eurostudy/internal/resume"
	"github.com/eurouni/eurostudy/internal/utils"
)

// DefaultAutoSaveInterval matches the builder page's 30-second cadence.
const DefaultAutoSaveInterval = 30 * time.Second

// PreviewPublisher fans a re-rendered preview document out to whoever is
// watching (websocket subscribers via Redis pub/sub in production).
type PreviewPublisher interface {
	Publish(ctx context.Context, resumeID string, html string) error
}

// EditorState is the observable slice of an editing session.
type EditorState struct {
	SessionID   string     `json:"session_id"`
	ResumeID    string     `json:"resume_id"`
	Status      string     `json:"status"` // saved|unsaved|saving|error
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
}

// EditorService drives the builder-page save state machine server-side.
// Each open session holds an uncommitted draft seeded once from the store;
// section updates mutate only the draft until a manual save or the
// auto-save ticker persists it. Closing the session discards the draft and
// stops the ticker.
type EditorService interface {
	Start(ctx context.Context, ownerID, resumeID string) (*EditorState, error)
	ApplySection(ctx context.Context, ownerID, resumeID string, patch resume.Patch) (*EditorState, error)
	Save(ctx context.Context, ownerID, resumeID string) (*EditorState, error)
	Status(ownerID, resumeID string) (*EditorState, error)
	Draft(ownerID, resumeID string) (*models.Resume, error)
	Close(ctx context.Context, ownerID, resumeID string) error
}

type editorSession struct {
	sessionID string
	ownerID   string
	resumeID  string

	mu          sync.Mutex
	draft       *models.Resume
	status      string
	seq         int64
	lastSavedAt *time.Time

	stop chan struct{}
}

type editorService struct {
	resumes   ResumeService
	sessions  mongorepo.EditSessionRepository // nil in offline mode
	publisher PreviewPublisher                // nil when no live preview
	log       *logrus.Logger

	interval    time.Duration
	snapshotTTL time.Duration

	mu   sync.Mutex
	open map[string]*editorSession // ownerID + "/" + resumeID
}

func NewEditorService(resumes ResumeService, sessions mongorepo.EditSessionRepository, publisher PreviewPublisher, log *logrus.Logger, interval time.Duration) EditorService {
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}
	return &editorService{
		resumes:     resumes,
		sessions:    sessions,
		publisher:   publisher,
		log:         log,
		interval:    interval,
		snapshotTTL: 24 * time.Hour,
		open:        make(map[string]*editorSession),
	}
}

func sessionKey(ownerID, resumeID string) string { return ownerID + "/" + resumeID }

// Start opens (or re-joins) an editing session. The draft is seeded from
// the store exactly once; a fresh session over a cleanly loaded resume
// starts in "saved".
func (s *editorService) Start(ctx context.Context, ownerID, resumeID string) (*EditorState, error) {
	const op = "EditorService.Start"

	if ownerID == "" || resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner_id and resume_id are required", nil)
	}

	s.mu.Lock()
	if sess, ok := s.open[sessionKey(ownerID, resumeID)]; ok {
		s.mu.Unlock()
		return sess.state(), nil
	}
	s.mu.Unlock()

	r, err := s.resumes.GetByID(ctx, ownerID, resumeID)
	if err != nil {
		return nil, err
	}

	sess := &editorSession{
		sessionID: uuid.NewString(),
		ownerID:   ownerID,
		resumeID:  resumeID,
		draft:     r.Clone(),
		status:    models.SaveStatusSaved,
		stop:      make(chan struct{}),
	}

	s.mu.Lock()
	// lost the race: another request opened the session meanwhile
	if existing, ok := s.open[sessionKey(ownerID, resumeID)]; ok {
		s.mu.Unlock()
		return existing.state(), nil
	}
	s.open[sessionKey(ownerID, resumeID)] = sess
	s.mu.Unlock()

	if s.sessions != nil {
		if err := s.sessions.Create(ctx, &models.EditSession{
			SessionID:  sess.sessionID,
			UserID:     ownerID,
			ResumeID:   resumeID,
			LastStatus: models.SaveStatusSaved,
		}); err != nil {
			s.log.WithError(err).Warn("failed to record edit session")
		}
	}

	go s.autoSaveLoop(sess)
	return sess.state(), nil
}

func (s *editorService) lookup(ownerID, resumeID string) (*editorSession, error) {
	const op = "EditorService.lookup"

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.open[sessionKey(ownerID, resumeID)]
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "no open editor session for this resume", nil)
	}
	return sess, nil
}

// ApplySection replaces one section of the draft and marks the session
// unsaved. Persistence is deferred to save; the preview re-renders
// immediately.
func (s *editorService) ApplySection(ctx context.Context, ownerID, resumeID string, patch resume.Patch) (*EditorState, error) {
	sess, err := s.lookup(ownerID, resumeID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	patch.Apply(sess.draft)
	sess.seq++
	sess.status = models.SaveStatusUnsaved
	snapshot := sess.draft.Clone()
	sess.mu.Unlock()

	s.publishPreview(ctx, resumeID, snapshot)
	return sess.state(), nil
}

// Save persists the draft. A clean session is a no-op: no store write
// happens while the status is "saved".
func (s *editorService) Save(ctx context.Context, ownerID, resumeID string) (*EditorState, error) {
	sess, err := s.lookup(ownerID, resumeID)
	if err != nil {
		return nil, err
	}
	s.save(ctx, sess, false)
	return sess.state(), nil
}

// save runs one save attempt. The draft snapshot is taken at call time and
// survives a failed persist so the user can retry.
func (s *editorService) save(ctx context.Context, sess *editorSession, auto bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status == models.SaveStatusSaved {
		return
	}

	sess.status = models.SaveStatusSaving
	snapshot := sess.draft.Clone()
	seq := sess.seq

	if _, err := s.resumes.Save(ctx, sess.ownerID, sess.resumeID, resume.FullPatch(snapshot)); err != nil {
		sess.status = models.SaveStatusError
		s.log.WithFields(logrus.Fields{
			"resume_id": sess.resumeID,
			"auto":      auto,
		}).WithError(err).Warn("resume save failed")
		s.recordSave(sess.sessionID, models.SaveStatusError)
		return
	}

	now := time.Now().UTC()
	sess.lastSavedAt = &now
	sess.status = models.SaveStatusSaved
	s.recordSave(sess.sessionID, models.SaveStatusSaved)
	s.recordSnapshot(sess, snapshot, seq, auto, now)
}

func (s *editorService) recordSave(sessionID, status string) {
	if s.sessions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sessions.RecordSave(ctx, sessionID, status); err != nil {
		s.log.WithError(err).Warn("failed to record save status")
	}
}

func (s *editorService) recordSnapshot(sess *editorSession, snapshot *models.Resume, seq int64, auto bool, at time.Time) {
	if s.sessions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sessions.InsertSnapshot(ctx, &models.EditSnapshot{
		SessionID: sess.sessionID,
		ResumeID:  sess.resumeID,
		Seq:       seq,
		Resume:    *snapshot,
		Auto:      auto,
		TakenAt:   at,
		ExpiresAt: at.Add(s.snapshotTTL),
	}); err != nil {
		s.log.WithError(err).Warn("failed to record edit snapshot")
	}
}

func (s *editorService) Status(ownerID, resumeID string) (*EditorState, error) {
	sess, err := s.lookup(ownerID, resumeID)
	if err != nil {
		return nil, err
	}
	return sess.state(), nil
}

func (s *editorService) Draft(ownerID, resumeID string) (*models.Resume, error) {
	sess, err := s.lookup(ownerID, resumeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.draft.Clone(), nil
}

// Close discards the draft and stops the auto-save ticker so nothing keeps
// a reference to stale state.
func (s *editorService) Close(ctx context.Context, ownerID, resumeID string) error {
	sess, err := s.lookup(ownerID, resumeID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.open, sessionKey(ownerID, resumeID))
	s.mu.Unlock()

	close(sess.stop)

	if s.sessions != nil {
		if err := s.sessions.Close(ctx, sess.sessionID, time.Now().UTC()); err != nil {
			s.log.WithError(err).Warn("failed to close edit session record")
		}
	}
	return nil
}

func (s *editorService) autoSaveLoop(sess *editorSession) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.save(ctx, sess, true)
			cancel()
		}
	}
}

func (s *editorService) publishPreview(ctx context.Context, resumeID string, snapshot *models.Resume) {
	if s.publisher == nil {
		return
	}
	html, err := renderPreview(snapshot)
	if err != nil {
		s.log.WithError(err).Warn("failed to render preview")
		return
	}
	if err := s.publisher.Publish(ctx, resumeID, html); err != nil {
		s.log.WithError(err).Warn("failed to publish preview")
	}
}

func (sess *editorSession) state() *EditorState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return &EditorState{
		SessionID:   sess.sessionID,
		ResumeID:    sess.resumeID,
		Status:      sess.status,
		LastSavedAt: sess.lastSavedAt,
	}
}
