package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"codama/internal/models"
	"codama/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDisk(t *testing.T, files map[string]string) *storage.LocalDisk {
	t.Helper()
	disk, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	for rel, content := range files {
		full := filepath.Join(disk.Root(), filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return disk
}

func readDownload(t *testing.T, d *Download) string {
	t.Helper()
	defer d.Close()
	b, err := io.ReadAll(d)
	require.NoError(t, err)
	return string(b)
}

func TestDownloadService_Design_OwnerGetsPrefixedAttachment(t *testing.T) {
	owner := uuid.New()
	design := &models.Design{ID: uuid.New(), UserID: owner, FilePath: "designs/2024/logo.ai"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)
	disk := newTestDisk(t, map[string]string{"designs/2024/logo.ai": "vector"})

	svc := NewDownloadService(finder, disk)
	d, err := svc.Design(context.Background(), Actor{ID: owner, Role: models.RoleUser}, design.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "codama-logo.ai", d.Filename)
	assert.Equal(t, "vector", readDownload(t, d))
	finder.AssertExpectations(t)
}

func TestDownloadService_Design_AdminCanDownloadAnyDesign(t *testing.T) {
	design := &models.Design{ID: uuid.New(), UserID: uuid.New(), FilePath: "poster.png"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)
	disk := newTestDisk(t, map[string]string{"poster.png": "png"})

	svc := NewDownloadService(finder, disk)
	d, err := svc.Design(context.Background(), Actor{ID: uuid.New(), Role: models.RoleAdmin}, design.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "codama-poster.png", d.Filename)
	assert.Equal(t, "png", readDownload(t, d))
}

func TestDownloadService_Design_NonOwnerIsForbidden(t *testing.T) {
	design := &models.Design{ID: uuid.New(), UserID: uuid.New(), FilePath: "poster.png"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)
	disk := newTestDisk(t, map[string]string{"poster.png": "png"})

	svc := NewDownloadService(finder, disk)
	_, err := svc.Design(context.Background(), Actor{ID: uuid.New(), Role: models.RoleUser}, design.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDownloadService_Design_MissingDesignIsNotFoundBeforeAuthorization(t *testing.T) {
	id := uuid.New()
	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, id, false).Return(nil, nil)

	svc := NewDownloadService(finder, newTestDisk(t, nil))

	// A stranger asking for an unknown id learns only that it does not exist.
	_, err := svc.Design(context.Background(), Actor{ID: uuid.New(), Role: models.RoleUser}, id.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestDownloadService_Design_UnparsableIDIsNotFound(t *testing.T) {
	finder := new(MockDesignFinder)
	svc := NewDownloadService(finder, newTestDisk(t, nil))

	_, err := svc.Design(context.Background(), Actor{ID: uuid.New(), Role: models.RoleUser}, "42")
	assert.ErrorIs(t, err, ErrNotFound)
	finder.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDownloadService_Design_FallsBackToPublicDirectory(t *testing.T) {
	owner := uuid.New()
	design := &models.Design{ID: uuid.New(), UserID: owner, FilePath: "designs/mug.svg"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)
	disk := newTestDisk(t, map[string]string{"public/designs/mug.svg": "public copy"})

	svc := NewDownloadService(finder, disk)
	d, err := svc.Design(context.Background(), Actor{ID: owner, Role: models.RoleUser}, design.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "codama-mug.svg", d.Filename)
	assert.Equal(t, "public copy", readDownload(t, d))
}

func TestDownloadService_Design_PrefersPrimaryPath(t *testing.T) {
	owner := uuid.New()
	design := &models.Design{ID: uuid.New(), UserID: owner, FilePath: "designs/mug.svg"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)
	disk := newTestDisk(t, map[string]string{
		"designs/mug.svg":        "primary",
		"public/designs/mug.svg": "public copy",
	})

	svc := NewDownloadService(finder, disk)
	d, err := svc.Design(context.Background(), Actor{ID: owner, Role: models.RoleUser}, design.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "primary", readDownload(t, d))
}

func TestDownloadService_Design_MissingFileIsNotFound(t *testing.T) {
	owner := uuid.New()
	design := &models.Design{ID: uuid.New(), UserID: owner, FilePath: "designs/gone.pdf"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)

	svc := NewDownloadService(finder, newTestDisk(t, nil))
	_, err := svc.Design(context.Background(), Actor{ID: owner, Role: models.RoleUser}, design.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadService_Design_NonOwnerForbiddenEvenWhenFileMissing(t *testing.T) {
	design := &models.Design{ID: uuid.New(), UserID: uuid.New(), FilePath: "designs/gone.pdf"}

	finder := new(MockDesignFinder)
	finder.On("GetByID", mock.Anything, design.ID, false).Return(design, nil)

	svc := NewDownloadService(finder, newTestDisk(t, nil))
	_, err := svc.Design(context.Background(), Actor{ID: uuid.New(), Role: models.RoleUser}, design.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDownloadService_Storage(t *testing.T) {
	disk := newTestDisk(t, map[string]string{
		"proofs/receipt.jpg":     "jpg",
		"public/galleries/a.png": "png",
	})
	svc := NewDownloadService(new(MockDesignFinder), disk)
	actor := Actor{ID: uuid.New(), Role: models.RoleUser}

	d, err := svc.Storage(context.Background(), actor, "proofs/receipt.jpg")
	require.NoError(t, err)
	assert.Equal(t, "receipt.jpg", d.Filename)
	assert.Equal(t, "jpg", readDownload(t, d))

	d, err = svc.Storage(context.Background(), actor, "galleries/a.png")
	require.NoError(t, err)
	assert.Equal(t, "a.png", d.Filename)
	assert.Equal(t, "png", readDownload(t, d))

	_, err = svc.Storage(context.Background(), actor, "../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Storage(context.Background(), actor, "nothing/here.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Storage(context.Background(), Actor{}, "proofs/receipt.jpg")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
