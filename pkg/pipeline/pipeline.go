// Package pipeline composes the forward imaging model: per-subunit
// projection of an assembled specimen, the optics response, and the
// Fourier-space filter chain applied before an image is observed.
package pipeline

import (
	"fmt"

	"cryosim/pkg/density"
	"cryosim/pkg/imaging"
	"cryosim/pkg/optics"
	"cryosim/pkg/projection"
)

// ProgressCallback reports per-subunit rendering progress. It may be nil.
type ProgressCallback func(completed, total int, message string)

// Params holds the forward-model configuration.
type Params struct {
	// Config is the shared image configuration.
	Config *imaging.Config

	// Method is the projection strategy.
	Method projection.Method

	// Subunits are the lab-frame specimen instances to image, as
	// realized by an assembly or a single bare specimen.
	Subunits []density.Subunit

	// CTF is the optics response applied to the summed projection.
	// Nil means ideal optics.
	CTF *optics.CTF

	// Detector contributes readout noise variance to the default
	// observation model. Optional.
	Detector *optics.GaussianDetector

	// Solvent contributes ice scattering variance to the default
	// observation model. Optional.
	Solvent *optics.GaussianIce

	// Filters is the Fourier-space operator chain applied together
	// with cropping when an image is observed.
	Filters []imaging.Operator

	// Progress reports per-subunit rendering progress. Optional.
	Progress ProgressCallback
}

// Pipeline renders simulated images of an assembled specimen. All state
// is fixed at construction; rendering is a pure function of it.
type Pipeline struct {
	params *Params
}

// New validates the configuration and creates a pipeline.
func New(params *Params) (*Pipeline, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("pipeline requires an image configuration")
	}
	if params.Method == nil {
		return nil, fmt.Errorf("pipeline requires a projection method")
	}
	if len(params.Subunits) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one subunit")
	}
	if params.CTF != nil {
		if err := params.CTF.Validate(); err != nil {
			return nil, fmt.Errorf("invalid ctf: %v", err)
		}
	}
	return &Pipeline{params: params}, nil
}

// Config returns the pipeline's image configuration.
func (p *Pipeline) Config() *imaging.Config { return p.params.Config }

// Detector returns the detector noise model, or nil.
func (p *Pipeline) Detector() *optics.GaussianDetector { return p.params.Detector }

// Solvent returns the ice noise model, or nil.
func (p *Pipeline) Solvent() *optics.GaussianIce { return p.params.Solvent }

// CTF returns the optics response, or nil.
func (p *Pipeline) CTF() *optics.CTF { return p.params.CTF }

// Render computes the uncropped image of the specimen on the padded
// frequency grid: every subunit's density is placed at its pose,
// projected, and the projections are summed; the CTF then modulates the
// sum. Subunits are projected in parallel and the sum is accumulated by
// the collecting goroutine alone.
func (p *Pipeline) Render() (*imaging.Spectrum, error) {
	subunits := p.params.Subunits

	type renderResult struct {
		index    int
		spectrum *imaging.Spectrum
		err      error
	}
	resultChan := make(chan renderResult)

	for i, sub := range subunits {
		go func(index int, sub density.Subunit) {
			placed, err := density.Transformed(sub.Current(), sub.Pose())
			if err != nil {
				resultChan <- renderResult{index: index, err: err}
				return
			}
			spec, err := p.params.Method.Project(placed)
			resultChan <- renderResult{index: index, spectrum: spec, err: err}
		}(i, sub)
	}

	shape := p.params.Config.PaddedShape()
	total := imaging.NewSpectrum(shape[0], imaging.HalfPlaneCols(shape[1]))
	var firstErr error
	for completed := 0; completed < len(subunits); completed++ {
		res := <-resultChan
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("projecting subunit %d failed: %v", res.index, res.err)
			}
			continue
		}
		if firstErr == nil {
			if err := total.Add(res.spectrum); err != nil {
				firstErr = fmt.Errorf("accumulating subunit %d failed: %v", res.index, err)
			}
		}
		if p.params.Progress != nil {
			p.params.Progress(completed+1, len(subunits), "projected subunit")
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	if p.params.CTF != nil {
		imaging.Apply(total, p.params.Config.PaddedFrequencyGrid(), p.params.CTF.Operator())
	}
	return total, nil
}

// CropAndApplyOperators applies the pipeline's Fourier-space filter chain
// on the padded grid and crops the result to the target shape. This is
// the observation step shared by sampling and likelihood evaluation.
func (p *Pipeline) CropAndApplyOperators(s *imaging.Spectrum) (*imaging.Spectrum, error) {
	padded := p.params.Config.PaddedFrequencyGrid()
	if s.Rows != padded.Rows || s.Cols != padded.Cols {
		return nil, fmt.Errorf("spectrum shape %dx%d does not match padded grid %dx%d",
			s.Rows, s.Cols, padded.Rows, padded.Cols)
	}

	filtered := s.Clone()
	for _, op := range p.params.Filters {
		imaging.Apply(filtered, padded, op)
	}
	return imaging.CropSpectrum(filtered, p.params.Config.Shape)
}

// RenderObserved renders the specimen and applies the observation step,
// returning the filtered image at the target shape.
func (p *Pipeline) RenderObserved() (*imaging.Spectrum, error) {
	rendered, err := p.Render()
	if err != nil {
		return nil, err
	}
	return p.CropAndApplyOperators(rendered)
}
