// Package profile loads the optional HCL reuse-build profile. The profile
// is how a user declares that build artifacts were produced elsewhere and
// where their target directory lives on this machine:
//
//	reuse_build {
//	  target_dir = "/srv/ci/artifacts/target"
//	}
//
// Loading a profile yields the path-remapping collaborator consumed by
// RawMeta.Remap. An absent file path, an absent block, or an unset
// target_dir all yield the identity mapper.
package profile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/remap"
)

// hclProfileFile represents the top-level structure of a profile file for
// decoding.
type hclProfileFile struct {
	ReuseBuild *hclReuseBuildBlock `hcl:"reuse_build,block"`
}

// hclReuseBuildBlock represents the `reuse_build` block.
type hclReuseBuildBlock struct {
	TargetDir hcl.Expression `hcl:"target_dir,optional"`
}

// Load parses the profile at path and returns the resulting path mapper. An
// empty path means no profile was given and returns the identity mapper.
func Load(ctx context.Context, path string) (remap.Mapper, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No reuse-build profile given, keeping original paths.")
		return remap.Identity(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var parsedFile hclProfileFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}

	if parsedFile.ReuseBuild == nil || parsedFile.ReuseBuild.TargetDir == nil {
		logger.Debug("Profile has no reuse_build target_dir, keeping original paths.", "path", path)
		return remap.Identity(), nil
	}

	val, diags := parsedFile.ReuseBuild.TargetDir.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate target_dir in profile %s: %w", path, diags)
	}
	if val.IsNull() {
		return remap.Identity(), nil
	}
	if val.Type() != cty.String {
		return nil, fmt.Errorf("target_dir in profile %s must be a string, got %s", path, val.Type().FriendlyName())
	}

	dir := val.AsString()
	logger.Debug("Reuse-build profile loaded.", "path", path, "target_dir", dir)
	return remap.NewTargetDirMapper(dir), nil
}
