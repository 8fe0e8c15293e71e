package types

// ImageGenerationRequest is the body of POST /v1/images/generations. Pointer
// fields distinguish "absent" from zero values.
type ImageGenerationRequest struct {
	// Required text prompt.
	// example: a watercolor fox in the snow
	Prompt *string `json:"prompt" example:"a watercolor fox in the snow"`
	// Optional model name. Defaults to default_model, then the first configured model.
	// example: sd15
	Model string `json:"model,omitempty" example:"sd15"`
	// Number of images; mapped to sd-cli batch count.
	// example: 1
	N *int `json:"n,omitempty" example:"1"`
	// Image size as WxH. Ignored unless both halves parse.
	// example: 512x512
	Size string `json:"size,omitempty" example:"512x512"`
	// example: blurry, low quality
	NegativePrompt *string `json:"negative_prompt,omitempty" example:"blurry, low quality"`
	// example: 20
	Steps *int `json:"steps,omitempty" example:"20"`
	// example: 7
	CFGScale *float64 `json:"cfg_scale,omitempty" example:"7"`
	// Distilled guidance (Flux). Omitted from the sd-cli call when absent.
	// example: 3.5
	Guidance *float64 `json:"guidance,omitempty" example:"3.5"`
	// Negative means random.
	// example: -1
	Seed *int64 `json:"seed,omitempty" example:"-1"`
	// example: euler_a
	Sampler *string `json:"sampler,omitempty" example:"euler_a"`
	// example: discrete
	Scheduler *string `json:"scheduler,omitempty" example:"discrete"`
	// Accepted for OpenAI compatibility; only b64_json is produced.
	// example: b64_json
	ResponseFormat string `json:"response_format,omitempty" example:"b64_json"`
}

// ImageData is one generated image.
type ImageData struct {
	// Base64-encoded PNG.
	B64JSON string `json:"b64_json"`
}

// ImageGenerationResponse is returned on success.
type ImageGenerationResponse struct {
	// Creation time in unix seconds.
	// example: 1700000000
	Created int64       `json:"created" example:"1700000000"`
	Data    []ImageData `json:"data"`
}

// ModelObject is one entry of GET /v1/models.
type ModelObject struct {
	// example: sd15
	ID string `json:"id" example:"sd15"`
	// example: model
	Object string `json:"object" example:"model"`
	// example: local
	OwnedBy string `json:"owned_by" example:"local"`
}

// ModelList wraps the models returned by GET /v1/models.
type ModelList struct {
	// example: list
	Object string        `json:"object" example:"list"`
	Data   []ModelObject `json:"data"`
}

// ErrorBody is the OpenAI-style error object. Code is null unless a specific
// machine-readable code applies.
type ErrorBody struct {
	// example: model 'missing' not found in config
	Message string `json:"message" example:"model 'missing' not found in config"`
	// example: not_found_error
	Type string `json:"type" example:"not_found_error"`
	// example: model_not_found
	Code *string `json:"code" example:"model_not_found"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// idle or busy.
	// example: idle
	State string `json:"state" example:"idle"`
	// True while a generation holds the accelerator gate.
	GateBusy bool `json:"gate_busy"`
	// Callers waiting for the gate.
	// example: 0
	Waiters int `json:"waiters" example:"0"`
	// example: 12
	GenerationsTotal uint64 `json:"generations_total" example:"12"`
	// example: 1
	GenerationsFailed uint64 `json:"generations_failed" example:"1"`
	// example: 14
	ImagesTotal uint64 `json:"images_total" example:"14"`
	// Kind of the last failure, e.g. process_failed.
	LastError string `json:"last_error,omitempty"`
	// Time of the last failure in unix seconds.
	LastErrorUnix int64 `json:"last_error_unix,omitempty"`
	// Model of the most recent generation.
	LastModel string `json:"last_model,omitempty"`
	// Configured model count.
	// example: 2
	Models int `json:"models" example:"2"`
	// Whether the sd-cli executable currently resolves to a file.
	ExecutableFound bool `json:"executable_found"`
	// Configured weight files that do not exist on disk.
	// example: 0
	MissingWeights int `json:"missing_weights" example:"0"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
