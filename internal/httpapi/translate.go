package httpapi

import (
	"strconv"
	"strings"

	"sdx/pkg/types"
)

// parseSize parses "WxH". Both halves must be unsigned integers, otherwise
// ok is false and the size is ignored.
func parseSize(s string) (w, h int, ok bool) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, false
	}
	pw, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 31)
	if err != nil {
		return 0, 0, false
	}
	ph, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 31)
	if err != nil {
		return 0, 0, false
	}
	return int(pw), int(ph), true
}

// validateImageRequest returns a client-facing message for unusable field
// values, or "" when the request is acceptable.
func validateImageRequest(req types.ImageGenerationRequest) string {
	if req.Prompt == nil || strings.TrimSpace(*req.Prompt) == "" {
		return "prompt is required"
	}
	if req.N != nil && *req.N < 1 {
		return "n must be at least 1"
	}
	if req.Steps != nil && *req.Steps < 0 {
		return "steps must not be negative"
	}
	if req.ResponseFormat != "" && req.ResponseFormat != "b64_json" {
		return "only response_format 'b64_json' is supported"
	}
	return ""
}

// toGenerationRequest maps the wire request onto generation overrides. n
// becomes the batch count.
func toGenerationRequest(model string, req types.ImageGenerationRequest) types.GenerationRequest {
	out := types.GenerationRequest{
		Model: model,
		Params: types.Params{
			NegativePrompt: req.NegativePrompt,
			Steps:          req.Steps,
			CFGScale:       req.CFGScale,
			Guidance:       req.Guidance,
			Seed:           req.Seed,
			SamplingMethod: req.Sampler,
			Scheduler:      req.Scheduler,
			BatchCount:     req.N,
		},
	}
	if req.Prompt != nil {
		out.Prompt = *req.Prompt
	}
	if w, h, ok := parseSize(req.Size); ok {
		out.Width = &w
		out.Height = &h
	}
	return out
}
