package bundle

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/session"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// setupTestRegistry starts an in-memory registry and returns its host
func setupTestRegistry(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(registry.New())
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	return u.Host
}

func testVersion(t *testing.T) *session.Version {
	t.Helper()

	plan, err := uiplan.ValidateJSON([]byte(`{
		"summary": "Orders dashboard",
		"layout": {"layoutStyle": "dashboard", "hasSidebar": true},
		"root": {"id": "root", "kind": "page", "children": [
			{"id": "orders", "kind": "table", "props": {"columns": ["id", "total"], "pageSize": 25}}
		]}
	}`))
	require.NoError(t, err)

	fp, err := uiplan.Fingerprint(plan)
	require.NoError(t, err)

	return &session.Version{
		ID:          "3f1c9a52-7d1e-4b8a-9a43-1b2c3d4e5f60",
		Plan:        plan,
		Code:        codegen.Generate(plan),
		Fingerprint: fp,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	host := setupTestRegistry(t)
	ref := host + "/team/orders-ui:v1"
	v := testVersion(t)
	ctx := context.Background()

	digest, err := Export(ctx, ref, v, Options{})
	require.NoError(t, err)
	assert.Contains(t, digest, "sha256:")

	artifact, err := Import(ctx, ref, Options{})
	require.NoError(t, err)

	assert.Equal(t, digest, artifact.Digest)
	assert.Equal(t, v.ID, artifact.VersionID)
	assert.Equal(t, v.Fingerprint, artifact.Fingerprint)
	assert.Equal(t, v.Code, artifact.Code)
	assert.Equal(t, v.Plan, artifact.Plan)
}

func TestImageLabels(t *testing.T) {
	v := testVersion(t)

	img, err := Image(v)
	require.NoError(t, err)

	cfg, err := img.ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, v.ID, cfg.Config.Labels[LabelVersionID])
	assert.Equal(t, v.Fingerprint, cfg.Config.Labels[LabelFingerprint])
	assert.Equal(t, "Orders dashboard", cfg.Config.Labels[LabelSummary])

	manifest, err := img.Manifest()
	require.NoError(t, err)
	assert.Equal(t, ArtifactType, manifest.Annotations["org.opencontainers.image.artifactType"])
	require.Len(t, manifest.Layers, 2)
	assert.Equal(t, PlanMediaType, string(manifest.Layers[0].MediaType))
	assert.Equal(t, CodeMediaType, string(manifest.Layers[1].MediaType))
}

func TestImportRejectsContainerImage(t *testing.T) {
	host := setupTestRegistry(t)
	ref := host + "/team/not-ui:latest"

	img, err := random.Image(256, 1)
	require.NoError(t, err)
	parsed, err := name.ParseReference(ref)
	require.NoError(t, err)
	require.NoError(t, remote.Write(parsed, img))

	_, err = Import(context.Background(), ref, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBundleInvalid, errors.CodeOf(err))
}

func TestFromImageRejectsTamperedFingerprint(t *testing.T) {
	v := testVersion(t)
	img, err := Image(v)
	require.NoError(t, err)

	cfg, err := img.ConfigFile()
	require.NoError(t, err)
	cfg = cfg.DeepCopy()
	cfg.Config.Labels[LabelFingerprint] = "0000"

	tampered, err := mutate.ConfigFile(img, cfg)
	require.NoError(t, err)
	tampered = mutate.Annotations(tampered, map[string]string{
		"org.opencontainers.image.artifactType": ArtifactType,
	}).(v1.Image)

	_, err = FromImage(tampered)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBundleInvalid, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "does not match label 0000")
}

func TestImportMissingTag(t *testing.T) {
	host := setupTestRegistry(t)

	_, err := Import(context.Background(), host+"/team/absent:v9", Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBundlePull, errors.CodeOf(err))
	assert.Equal(t, ErrTypeNotFound, Classify(err))
}

func TestExportInvalidReference(t *testing.T) {
	_, err := Export(context.Background(), "UPPER/Case:??", testVersion(t), Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBundlePush, errors.CodeOf(err))
	assert.Equal(t, ErrTypeInvalidRef, Classify(err))
	assert.Contains(t, err.Error(), "References look like")
}
