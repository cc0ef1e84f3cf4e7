package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/resume"
	"github.com/eurouni/eurostudy/internal/store"
	"github.com/eurouni/eurostudy/internal/utils"
)

type capturePublisher struct {
	published []string
}

func (p *capturePublisher) Publish(_ context.Context, _ string, html string) error {
	p.published = append(p.published, html)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// long interval keeps the ticker out of the way; tests drive save() directly
func newTestEditor(t *testing.T) (*editorService, ResumeService, *store.MemoryStore, *capturePublisher) {
	t.Helper()
	ms := store.NewMemoryStore()
	resumes := NewResumeService(ms, nil)
	pub := &capturePublisher{}
	ed := NewEditorService(resumes, nil, pub, quietLogger(), time.Hour).(*editorService)
	return ed, resumes, ms, pub
}

func TestEditorStartSeedsDraftOnce(t *testing.T) {
	ed, resumes, _, _ := newTestEditor(t)
	ctx := context.Background()

	r, err := resumes.CreateNew(ctx, "u1", "Draft")
	require.NoError(t, err)

	state, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusSaved, state.Status)
	assert.NotEmpty(t, state.SessionID)

	// re-joining does not reseed or rotate the session
	name := "Renamed Behind the Session"
	_, err = resumes.Save(ctx, "u1", r.ID, resume.Patch{Name: &name})
	require.NoError(t, err)

	again, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, again.SessionID)

	draft, err := ed.Draft("u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", draft.Name)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorStartUnknownResume(t *testing.T) {
	ed, _, _, _ := newTestEditor(t)
	_, err := ed.Start(context.Background(), "u1", "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestEditorApplySectionMarksUnsaved(t *testing.T) {
	ed, resumes, ms, pub := newTestEditor(t)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)
	writes := ms.Writes

	info := models.PersonalInfo{FullName: "Lena Kovacs"}
	state, err := ed.ApplySection(ctx, "u1", r.ID, resume.Patch{PersonalInfo: &info})
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusUnsaved, state.Status)

	// draft only; the store is untouched until save
	assert.Equal(t, writes, ms.Writes)
	stored, err := resumes.GetByID(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PersonalInfo.FullName)

	// every section change re-renders the preview
	require.Len(t, pub.published, 1)
	assert.Contains(t, pub.published[0], "Lena Kovacs")

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorSavePersistsDraft(t *testing.T) {
	ed, resumes, _, _ := newTestEditor(t)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)

	info := models.PersonalInfo{FullName: "Lena Kovacs"}
	_, err = ed.ApplySection(ctx, "u1", r.ID, resume.Patch{PersonalInfo: &info})
	require.NoError(t, err)

	state, err := ed.Save(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusSaved, state.Status)
	require.NotNil(t, state.LastSavedAt)

	stored, err := resumes.GetByID(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lena Kovacs", stored.PersonalInfo.FullName)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorSaveCleanSessionIsNoOp(t *testing.T) {
	ed, resumes, ms, _ := newTestEditor(t)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)
	writes := ms.Writes

	state, err := ed.Save(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusSaved, state.Status)
	assert.Equal(t, writes, ms.Writes)

	// the auto-save path skips clean sessions the same way
	sess, err := ed.lookup("u1", r.ID)
	require.NoError(t, err)
	ed.save(ctx, sess, true)
	assert.Equal(t, writes, ms.Writes)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorSaveErrorPreservesDraft(t *testing.T) {
	ed, resumes, ms, _ := newTestEditor(t)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)

	info := models.PersonalInfo{FullName: "Retry Me"}
	_, err = ed.ApplySection(ctx, "u1", r.ID, resume.Patch{PersonalInfo: &info})
	require.NoError(t, err)

	ms.FailNext = true
	state, err := ed.Save(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusError, state.Status)
	assert.Nil(t, state.LastSavedAt)

	// the draft is intact; a retry succeeds and lands the same content
	draft, err := ed.Draft("u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retry Me", draft.PersonalInfo.FullName)

	state, err = ed.Save(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusSaved, state.Status)

	stored, err := resumes.GetByID(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retry Me", stored.PersonalInfo.FullName)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorAutoSaveTicker(t *testing.T) {
	ms := store.NewMemoryStore()
	resumes := NewResumeService(ms, nil)
	ed := NewEditorService(resumes, nil, nil, quietLogger(), 20*time.Millisecond)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)

	info := models.PersonalInfo{FullName: "Timed Out"}
	_, err = ed.ApplySection(ctx, "u1", r.ID, resume.Patch{PersonalInfo: &info})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		state, serr := ed.Status("u1", r.ID)
		return serr == nil && state.Status == models.SaveStatusSaved
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := resumes.GetByID(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Timed Out", stored.PersonalInfo.FullName)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}

func TestEditorCloseDiscardsDraft(t *testing.T) {
	ed, resumes, _, _ := newTestEditor(t)
	ctx := context.Background()

	r, _ := resumes.CreateNew(ctx, "u1", "Draft")
	_, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)

	info := models.PersonalInfo{FullName: "Never Saved"}
	_, err = ed.ApplySection(ctx, "u1", r.ID, resume.Patch{PersonalInfo: &info})
	require.NoError(t, err)

	require.NoError(t, ed.Close(ctx, "u1", r.ID))

	_, err = ed.Status("u1", r.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	stored, err := resumes.GetByID(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PersonalInfo.FullName)

	// a new session reseeds from the store
	state, err := ed.Start(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaveStatusSaved, state.Status)
	require.NoError(t, ed.Close(ctx, "u1", r.ID))
}
