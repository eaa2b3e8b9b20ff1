package blocks

import "math/rand"

// DefaultMagicOdds gives a 1-in-10 chance of a magic anchor cell.
const DefaultMagicOdds = 10

// Generator produces the next piece to enter the board.
type Generator interface {
	Next() *Polyomino
}

// GeneratorOption configures the built-in generators.
type GeneratorOption func(*generatorConfig)

type generatorConfig struct {
	shapes    []Shape
	magicOdds int
}

// WithShapes restricts the generator to the given shapes.
func WithShapes(shapes ...Shape) GeneratorOption {
	return func(c *generatorConfig) {
		if len(shapes) > 0 {
			c.shapes = append([]Shape(nil), shapes...)
		}
	}
}

// WithMagicOdds sets the 1-in-n chance of a magic anchor. n <= 0 disables magic.
func WithMagicOdds(n int) GeneratorOption {
	return func(c *generatorConfig) {
		c.magicOdds = n
	}
}

func newGeneratorConfig(opts []GeneratorOption) generatorConfig {
	cfg := generatorConfig{
		shapes:    ReferenceShapes,
		magicOdds: DefaultMagicOdds,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c generatorConfig) rollMagic(rng *rand.Rand) bool {
	return c.magicOdds > 0 && rng.Intn(c.magicOdds) == 0
}

// UniformGenerator picks each shape with equal probability and keeps no
// state between calls apart from the random source.
type UniformGenerator struct {
	rng *rand.Rand
	cfg generatorConfig
}

// NewUniformGenerator returns a generator drawing from rng.
func NewUniformGenerator(rng *rand.Rand, opts ...GeneratorOption) *UniformGenerator {
	return &UniformGenerator{rng: rng, cfg: newGeneratorConfig(opts)}
}

// Next returns a new piece at its shape's spawn point.
func (g *UniformGenerator) Next() *Polyomino {
	shape := g.cfg.shapes[g.rng.Intn(len(g.cfg.shapes))]
	magic := g.cfg.rollMagic(g.rng)
	return New(shape, shape.Spawn(), magic)
}

// BagGenerator deals every configured shape once, in shuffled order, before
// reshuffling.
type BagGenerator struct {
	rng *rand.Rand
	cfg generatorConfig
	bag []Shape
	i   int
}

// NewBagGenerator returns a bag generator drawing from rng.
func NewBagGenerator(rng *rand.Rand, opts ...GeneratorOption) *BagGenerator {
	g := &BagGenerator{rng: rng, cfg: newGeneratorConfig(opts)}
	g.shuffle()
	return g
}

func (g *BagGenerator) shuffle() {
	g.bag = append(g.bag[:0], g.cfg.shapes...)
	g.rng.Shuffle(len(g.bag), func(i, j int) { g.bag[i], g.bag[j] = g.bag[j], g.bag[i] })
	g.i = 0
}

// Next returns the next piece from the bag.
func (g *BagGenerator) Next() *Polyomino {
	if g.i == len(g.bag) {
		g.shuffle()
	}
	shape := g.bag[g.i]
	g.i++
	return New(shape, shape.Spawn(), g.cfg.rollMagic(g.rng))
}
