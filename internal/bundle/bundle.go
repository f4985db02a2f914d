// Package bundle ships a plan version through an OCI registry. An artifact
// holds two layers, the canonical plan JSON and the generated TSX, and
// labels carrying the version id and plan fingerprint.
package bundle

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/static"
	"github.com/google/go-containerregistry/pkg/v1/types"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/session"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

const (
	ArtifactType  = "application/vnd.uiforge.version.v1"
	PlanMediaType = "application/vnd.uiforge.plan.v1+json"
	CodeMediaType = "application/vnd.uiforge.code.v1+tsx"

	LabelVersionID   = "dev.uiforge.version.id"
	LabelFingerprint = "dev.uiforge.plan.fingerprint"
	LabelSummary     = "org.opencontainers.image.description"

	annotationArtifactType = "org.opencontainers.image.artifactType"
	defaultUserAgent       = "uiforge-bundle/1.0"
)

// Options configures registry access
type Options struct {
	// Insecure allows plain HTTP registries
	Insecure bool

	// Keychain provides credentials; defaults to the docker config keychain
	Keychain authn.Keychain

	UserAgent string
}

func (o Options) remote(ctx context.Context) []remote.Option {
	kc := o.Keychain
	if kc == nil {
		kc = authn.DefaultKeychain
	}
	ua := o.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(kc),
		remote.WithUserAgent(ua),
	}
}

func (o Options) parse(ref string) (name.Reference, error) {
	if o.Insecure {
		return name.ParseReference(ref, name.Insecure)
	}
	return name.ParseReference(ref)
}

// Artifact is a version read back from a registry.
type Artifact struct {
	VersionID   string
	Fingerprint string
	Plan        uiplan.Plan
	Code        string
	Digest      string
}

// Image builds the OCI image for v without pushing it.
func Image(v *session.Version) (v1.Image, error) {
	snap, err := v.Snapshot()
	if err != nil {
		return nil, err
	}

	base := mutate.ConfigMediaType(mutate.MediaType(empty.Image, types.OCIManifestSchema1), types.OCIConfigJSON)
	img, err := mutate.AppendLayers(base,
		static.NewLayer([]byte(snap[patch.PlanFile]), types.MediaType(PlanMediaType)),
		static.NewLayer([]byte(snap[patch.CodeFile]), types.MediaType(CodeMediaType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append layers: %w", err)
	}

	// Keep the DiffIDs computed for the appended layers.
	current, err := img.ConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	img, err = mutate.ConfigFile(img, &v1.ConfigFile{
		Created: v1.Time{Time: v.CreatedAt},
		Config: v1.Config{
			Labels: map[string]string{
				LabelVersionID:   v.ID,
				LabelFingerprint: v.Fingerprint,
				LabelSummary:     v.Plan.Summary,
			},
		},
		RootFS: current.RootFS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set config: %w", err)
	}

	return mutate.Annotations(img, map[string]string{
		annotationArtifactType: ArtifactType,
	}).(v1.Image), nil
}

// Export pushes v to ref and returns the manifest digest.
func Export(ctx context.Context, ref string, v *session.Version, opts Options) (string, error) {
	parsed, err := opts.parse(ref)
	if err != nil {
		return "", wrapRegistryError(err, ref, errors.ErrCodeBundlePush, "push")
	}

	img, err := Image(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBundlePush, "failed to build artifact", err)
	}

	if err := remote.Write(parsed, img, opts.remote(ctx)...); err != nil {
		return "", wrapRegistryError(err, ref, errors.ErrCodeBundlePush, "push")
	}

	digest, err := img.Digest()
	if err != nil {
		return "", fmt.Errorf("failed to get digest: %w", err)
	}
	return digest.String(), nil
}

// Import pulls ref and re-validates the plan it carries. The artifact is
// rejected when its layers are not the expected pair or the plan does not
// match the recorded fingerprint.
func Import(ctx context.Context, ref string, opts Options) (*Artifact, error) {
	parsed, err := opts.parse(ref)
	if err != nil {
		return nil, wrapRegistryError(err, ref, errors.ErrCodeBundlePull, "pull")
	}

	img, err := remote.Image(parsed, opts.remote(ctx)...)
	if err != nil {
		return nil, wrapRegistryError(err, ref, errors.ErrCodeBundlePull, "pull")
	}

	return FromImage(img)
}

// FromImage reads and verifies an artifact from img.
func FromImage(img v1.Image) (*Artifact, error) {
	manifest, err := img.Manifest()
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}
	if t := manifest.Annotations[annotationArtifactType]; t != ArtifactType {
		return nil, invalid(fmt.Sprintf("not a uiforge artifact (type %q)", t))
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, fmt.Errorf("failed to get layers: %w", err)
	}

	contents := make(map[types.MediaType]string, len(layers))
	for _, layer := range layers {
		mt, err := layer.MediaType()
		if err != nil {
			return nil, fmt.Errorf("failed to get layer media type: %w", err)
		}
		data, err := readLayer(layer)
		if err != nil {
			return nil, err
		}
		contents[mt] = data
	}

	planJSON, okPlan := contents[PlanMediaType]
	code, okCode := contents[CodeMediaType]
	if len(layers) != 2 || !okPlan || !okCode {
		return nil, invalid(fmt.Sprintf("expected one plan layer and one code layer, got %d layers", len(layers)))
	}

	plan, err := uiplan.ValidateJSON([]byte(planJSON))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundleInvalid, "artifact plan is invalid", err)
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	labels := cfg.Config.Labels

	fp, err := uiplan.Fingerprint(plan)
	if err != nil {
		return nil, err
	}
	if want := labels[LabelFingerprint]; want != fp {
		return nil, invalid(fmt.Sprintf("plan fingerprint %s does not match label %s", fp, want))
	}

	digest, err := img.Digest()
	if err != nil {
		return nil, fmt.Errorf("failed to get digest: %w", err)
	}

	return &Artifact{
		VersionID:   labels[LabelVersionID],
		Fingerprint: fp,
		Plan:        plan,
		Code:        code,
		Digest:      digest.String(),
	}, nil
}

func readLayer(layer v1.Layer) (string, error) {
	rc, err := layer.Compressed()
	if err != nil {
		return "", fmt.Errorf("failed to open layer: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read layer: %w", err)
	}
	return string(data), nil
}

func invalid(msg string) error {
	return errors.New(errors.ErrCodeBundleInvalid, msg).
		WithSuggestion("Export the artifact again with 'uiforge export'")
}
