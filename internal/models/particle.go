package models

// Particle represents one simulated particle image with metadata
type Particle struct {
	// Index is the position of this particle in the stack
	Index int

	// Key is the sampling key used to draw this particle's noise
	Key uint64

	// Defocus is the objective defocus for this particle in angstroms
	Defocus float64

	// Conformation is the conformation label of the imaged subunit,
	// meaningful only for heterogeneous specimens
	Conformation int

	// OffsetX, OffsetY, OffsetZ are the assembly pose offsets in angstroms
	OffsetX, OffsetY, OffsetZ float64

	// Phi, Theta, Psi are the assembly view angles in degrees
	Phi, Theta, Psi float64

	// LogProbability is the log-likelihood of the particle under the
	// observation model, filled in after scoring
	LogProbability float64
}

// Stack represents a simulated particle dataset sharing one image
// configuration
type Stack struct {
	// Width and Height are the target image shape in pixels
	Width, Height int

	// PixelSize is the physical pixel size in angstroms
	PixelSize float64

	// Particles holds the per-particle metadata in stack order
	Particles []Particle
}

// Add appends a particle to the stack, assigning its index
func (s *Stack) Add(p Particle) {
	p.Index = len(s.Particles)
	s.Particles = append(s.Particles, p)
}

// Len returns the number of particles in the stack
func (s *Stack) Len() int {
	return len(s.Particles)
}
