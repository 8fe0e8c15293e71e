package manager

import (
	"context"
	"fmt"
	"time"

	"sdx/internal/registry"
	"sdx/internal/sdcli"
	"sdx/internal/sderr"
	"sdx/pkg/types"
)

// Run is the one-shot path. The model name falls back to default_model only.
// The image is written to output and left in place; Run returns output.
// Run blocks until sd-cli exits; ctx only carries the logger.
func (m *Manager) Run(ctx context.Context, req types.GenerationRequest, output string) (string, error) {
	name, err := m.reg.ResolveName(req.Model, registry.FallbackDefault)
	if err != nil {
		return "", err
	}
	model, err := m.reg.Resolve(name)
	if err != nil {
		return "", err
	}
	args := sdcli.Build(model, req, output)
	if _, err := m.pipeline(ctx, name, args, false); err != nil {
		return "", err
	}
	return output, nil
}

// Generate is the HTTP path. The model name falls back to default_model and
// then to the first registered model. Output goes to a unique temp file that
// is read and removed before the gate is released.
//
// If ctx is done before the pipeline finishes, Generate returns ctx.Err()
// while the pipeline keeps running detached; it still releases the gate and
// removes its files.
func (m *Manager) Generate(ctx context.Context, req types.GenerationRequest) (Result, error) {
	name, err := m.reg.ResolveName(req.Model, registry.FallbackFirst)
	if err != nil {
		return Result{}, err
	}
	model, err := m.reg.Resolve(name)
	if err != nil {
		return Result{}, err
	}
	args := sdcli.Build(model, req, m.tempOutputPath())

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = RemoveOutputs(args.Output)
				done <- outcome{err: sderr.IO("generation panicked", fmt.Errorf("%v", r))}
			}
		}()
		images, err := m.pipeline(ctx, name, args, true)
		done <- outcome{images: images, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return Result{}, o.err
		}
		return Result{Model: name, Images: o.images, Created: time.Now()}, nil
	case <-ctx.Done():
		log := m.logger(ctx)
		log.Info().Str("model", name).Msg("client gone; generation continues detached")
		m.publish(EventGenerationAbandoned, name, nil)
		return Result{}, ctx.Err()
	}
}

// pipeline checks the executable, then runs sd-cli inside the gate. With
// collect set, the outputs are read and removed while the gate is still held.
func (m *Manager) pipeline(ctx context.Context, name string, args sdcli.Args, collect bool) ([][]byte, error) {
	log := m.logger(ctx).With().Str("model", name).Logger()

	// before the gate so a bad path never blocks other callers
	if err := sdcli.CheckExecutable(m.exe); err != nil {
		m.record(name, 0, err)
		log.Error().Err(err).Msg("generation rejected")
		return nil, err
	}

	waitStart := time.Now()
	release := m.gate.Acquire()
	defer release()
	gateWaitSeconds.Observe(time.Since(waitStart).Seconds())

	log.Info().Int("width", args.Width).Int("height", args.Height).Int("steps", args.Steps).Int("batch", args.BatchCount).Msg("generation start")
	m.publish(EventGenerationStart, name, map[string]any{"batch": args.BatchCount})

	start := time.Now()
	err := m.exec.Run(m.exe, args)
	var images [][]byte
	if collect {
		if err == nil {
			images, err = ReadAndRemove(args.Output)
		} else if rmErr := RemoveOutputs(args.Output); rmErr != nil {
			log.Warn().Err(rmErr).Msg("cleanup failed")
			m.publish(EventCleanupFailed, name, map[string]any{"error": rmErr.Error()})
		}
	}
	dur := time.Since(start)
	generationDuration.WithLabelValues(name).Observe(dur.Seconds())
	m.record(name, len(images), err)

	if err != nil {
		log.Error().Err(err).Dur("duration", dur).Str("outcome", outcomeOf(err)).Msg("generation end")
		m.publish(EventGenerationFailed, name, map[string]any{"outcome": outcomeOf(err), "duration_ms": dur.Milliseconds()})
		return nil, err
	}
	log.Info().Dur("duration", dur).Int("images", len(images)).Msg("generation end")
	m.publish(EventGenerationEnd, name, map[string]any{"images": len(images), "duration_ms": dur.Milliseconds()})
	return images, nil
}

func (m *Manager) record(name string, images int, err error) {
	generationsTotal.WithLabelValues(name, outcomeOf(err)).Inc()
	if images > 0 {
		imagesTotal.WithLabelValues(name).Add(float64(images))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.total++
	m.stats.images += uint64(images)
	m.stats.lastModel = name
	if err != nil {
		m.stats.failed++
		m.stats.lastError = outcomeOf(err)
		m.stats.lastErrorAt = time.Now()
	}
}
