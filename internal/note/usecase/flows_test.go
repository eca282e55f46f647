package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	"geonotes/internal/notify"
	"geonotes/pkg/geo"
)

type stubGeolocator struct {
	pos   geo.LatLng
	err   error
	calls int
}

func (s *stubGeolocator) CurrentPosition(ctx context.Context) (geo.LatLng, error) {
	s.calls++
	return s.pos, s.err
}

type flowFixture struct {
	gw  *fakeGateway
	agg *implAggregator
	rec *notify.Recorder
	geo *stubGeolocator
	uc  *implUseCase
}

func newFlowFixture(titles ...string) *flowFixture {
	gw := newFakeGateway(titles...)
	agg := newTestAggregator(gw)
	rec := notify.NewRecorder(0)
	gl := &stubGeolocator{pos: geo.LatLng{Lat: 40.4, Lng: -3.7}}

	uc := New(&mockLogger{}, gw, agg, rec, gl).(*implUseCase)
	uc.now = func() time.Time { return time.Date(2024, 3, 9, 8, 30, 0, 0, time.UTC) }

	return &flowFixture{gw: gw, agg: agg, rec: rec, geo: gl, uc: uc}
}

func validPhoto() *note.Photo {
	return &note.Photo{Data: []byte("jpeg-bytes"), MIMEType: "image/jpeg"}
}

func TestSave_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  note.SaveInput
		fields []string
	}{
		{"Empty title", note.SaveInput{Title: "", Photo: validPhoto()}, []string{"title"}},
		{"Short title", note.SaveInput{Title: "abc", Photo: validPhoto()}, []string{"title"}},
		{"Whitespace padded short title", note.SaveInput{Title: "  ab  ", Photo: validPhoto()}, []string{"title"}},
		{"Missing photo", note.SaveInput{Title: "Long enough"}, []string{"photo"}},
		{"Empty photo", note.SaveInput{Title: "Long enough", Photo: &note.Photo{}}, []string{"photo"}},
		{"Both", note.SaveInput{}, []string{"title", "photo"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFlowFixture()
			_, err := f.uc.Save(context.Background(), tc.input)

			var verr *note.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, note.ErrInvalidInput)
			for _, field := range tc.fields {
				assert.Contains(t, verr.Fields, field)
			}
			assert.Len(t, verr.Fields, len(tc.fields))

			assert.Equal(t, 0, f.gw.createCall, "gateway must not be called")
			assert.Equal(t, 0, f.rec.Len(), "no notification on validation failure")
			assert.Equal(t, 0, f.geo.calls)
		})
	}
}

func TestSave_Success(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture("older")
	_, err := f.agg.LoadFirstPage(ctx, 2)
	require.NoError(t, err)

	out, err := f.uc.Save(ctx, note.SaveInput{Title: "  Sunset  ", Description: "Orange sky", Photo: validPhoto()})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Key)
	assert.Equal(t, "Sunset", out.Note.Title)
	assert.Equal(t, "2024-03-09 08:30:00", out.Note.Date)
	assert.Equal(t, "(40.4,-3.7)", out.Note.Position)
	assert.Equal(t, "data:image/jpeg;base64,anBlZy1ieXRlcw==", out.Note.Photo)

	require.Equal(t, 1, f.rec.Len())
	last, _ := f.rec.Last()
	assert.Equal(t, notify.KindSuccess, last.Kind)
	assert.Equal(t, out.Key, last.Note.Key)

	// The list was refreshed from the first page.
	snap := f.agg.Snapshot()
	assert.Equal(t, []string{"Sunset", "older"}, titles(snap.Notes))
}

func TestSave_ExplicitPositionAndDate(t *testing.T) {
	f := newFlowFixture()
	out, err := f.uc.Save(context.Background(), note.SaveInput{
		Title:    "Summit",
		Date:     "yesterday",
		Photo:    validPhoto(),
		Position: &geo.LatLng{Lat: 46.5, Lng: 8},
	})
	require.NoError(t, err)
	assert.Equal(t, "(46.5,8)", out.Note.Position)
	assert.Equal(t, "yesterday", out.Note.Date)
	assert.Equal(t, 0, f.geo.calls)
}

func TestSave_GeolocationFailure(t *testing.T) {
	f := newFlowFixture()
	f.geo.err = errors.New("permission denied")

	out, err := f.uc.Save(context.Background(), note.SaveInput{Title: "Indoors", Photo: validPhoto()})
	require.NoError(t, err)
	assert.Empty(t, out.Note.Position)
	assert.Equal(t, 1, f.rec.Len())
}

func TestSave_GatewayFailure(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture("a")
	_, err := f.agg.LoadFirstPage(ctx, 2)
	require.NoError(t, err)
	before := f.agg.Snapshot()
	f.gw.createErr = repository.ErrFailedToCreate

	_, err = f.uc.Save(ctx, note.SaveInput{Title: "Offline", Photo: validPhoto()})
	require.ErrorIs(t, err, repository.ErrFailedToCreate)

	require.Equal(t, 1, f.rec.Len())
	last, _ := f.rec.Last()
	assert.Equal(t, notify.KindFailure, last.Kind)
	assert.Equal(t, before, f.agg.Snapshot())
}

func TestSave_RefreshFailureStillOneNotification(t *testing.T) {
	f := newFlowFixture()
	f.gw.fetchErr = errors.New("list unavailable")

	_, err := f.uc.Save(context.Background(), note.SaveInput{Title: "Saved anyway", Photo: validPhoto()})
	require.NoError(t, err)
	require.Equal(t, 1, f.rec.Len())
	last, _ := f.rec.Last()
	assert.Equal(t, notify.KindSuccess, last.Kind)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFlowFixture("first", "second")
		_, err := f.agg.LoadFirstPage(ctx, 2)
		require.NoError(t, err)

		out, err := f.uc.Edit(ctx, note.EditInput{Key: "second", Title: "Second edited", Description: "more"})
		require.NoError(t, err)
		assert.True(t, out.Patched)
		assert.Equal(t, "p", out.Note.Photo, "untouched fields are kept")

		assert.Equal(t, []string{"first", "Second edited"}, titles(f.agg.Snapshot().Notes))
		stored, _ := f.gw.GetNote(ctx, "second")
		assert.Equal(t, "more", stored.Description)

		require.Equal(t, 1, f.rec.Len())
		last, _ := f.rec.Last()
		assert.Equal(t, notify.KindSuccess, last.Kind)
	})

	t.Run("Not loaded falls back to store", func(t *testing.T) {
		f := newFlowFixture("only")
		out, err := f.uc.Edit(ctx, note.EditInput{Key: "only", Title: "Only one"})
		require.NoError(t, err)
		assert.False(t, out.Patched)
	})

	t.Run("Validation", func(t *testing.T) {
		f := newFlowFixture("a")
		_, err := f.uc.Edit(ctx, note.EditInput{Key: "a", Title: "no"})
		assert.ErrorIs(t, err, note.ErrInvalidInput)
		assert.Equal(t, 0, f.rec.Len())
	})

	t.Run("Gateway failure", func(t *testing.T) {
		f := newFlowFixture("keep")
		_, err := f.agg.LoadFirstPage(ctx, 2)
		require.NoError(t, err)
		before := f.agg.Snapshot()
		f.gw.updateErr = repository.ErrFailedToUpdate

		_, err = f.uc.Edit(ctx, note.EditInput{Key: "keep", Title: "Changed"})
		require.ErrorIs(t, err, repository.ErrFailedToUpdate)
		assert.Equal(t, before, f.agg.Snapshot())
		require.Equal(t, 1, f.rec.Len())
		last, _ := f.rec.Last()
		assert.Equal(t, notify.KindFailure, last.Kind)
	})

	t.Run("Unknown key", func(t *testing.T) {
		f := newFlowFixture()
		_, err := f.uc.Edit(ctx, note.EditInput{Key: "ghost", Title: "Ghost note"})
		assert.ErrorIs(t, err, note.ErrNoteNotFound)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, 1, f.rec.Len())
	})
}

func TestCancelEdit(t *testing.T) {
	f := newFlowFixture("a")
	f.uc.CancelEdit(context.Background(), "a")

	require.Equal(t, 1, f.rec.Len())
	last, _ := f.rec.Last()
	assert.Equal(t, msgEditCancelled, last.Message)
	assert.Equal(t, notify.KindInfo, last.Kind)
	assert.Equal(t, 0, f.gw.calls())
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFlowFixture("a", "b", "c")
		_, err := f.agg.LoadFirstPage(ctx, 3)
		require.NoError(t, err)

		require.NoError(t, f.uc.Remove(ctx, "b"))
		assert.Equal(t, []string{"a", "c"}, titles(f.agg.Snapshot().Notes))
		assert.Equal(t, 1, f.rec.Len())
		_, err = f.gw.GetNote(ctx, "b")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Gateway failure", func(t *testing.T) {
		f := newFlowFixture("a", "b")
		_, err := f.agg.LoadFirstPage(ctx, 3)
		require.NoError(t, err)
		f.gw.deleteErr = repository.ErrFailedToDelete

		require.ErrorIs(t, f.uc.Remove(ctx, "a"), repository.ErrFailedToDelete)
		assert.Equal(t, []string{"a", "b"}, titles(f.agg.Snapshot().Notes))
		require.Equal(t, 1, f.rec.Len())
		last, _ := f.rec.Last()
		assert.Equal(t, notify.KindFailure, last.Kind)
	})

	t.Run("Empty key", func(t *testing.T) {
		f := newFlowFixture()
		assert.ErrorIs(t, f.uc.Remove(ctx, ""), note.ErrInvalidInput)
		assert.Equal(t, 0, f.rec.Len())
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture("a", "b")

	n, err := f.uc.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", n.Title)

	_, err = f.uc.Find(ctx, "missing")
	assert.ErrorIs(t, err, note.ErrNoteNotFound)

	// Loaded entries win over the store.
	_, err = f.agg.LoadFirstPage(ctx, 2)
	require.NoError(t, err)
	f.agg.ApplyUpdate(model.Note{Key: "a", Title: "local"})
	n, err = f.uc.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "local", n.Title)
}
