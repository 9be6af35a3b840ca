// Package stream keeps the set of rendered terrain chunks in sync with a
// moving viewpoint. Each update reconciles the cascade's desired chunk
// set against live entities, despawning chunks that fell out of range and
// generating meshes for chunks that entered it.
package stream

import (
	"time"

	"github.com/alitto/pond/v2"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/sdfterrain"
	"github.com/soypat/sdfterrain/cascade"
	"github.com/soypat/sdfterrain/mesher"
)

// EntityID is the rendering collaborator's handle for one spawned chunk.
type EntityID uint64

// Sink is the rendering collaborator receiving finished chunk meshes.
// Spawn is never called with an empty mesh. Both methods are always
// called from the goroutine running Update.
type Sink interface {
	Spawn(chunk cascade.Chunk, mesh *mesher.Mesh, translation r3.Vec) EntityID
	Despawn(id EntityID)
}

// Config holds the streaming parameters.
type Config struct {
	// MinSize is the edge length of the innermost ring's chunks.
	MinSize float64
	// Rings is the number of concentric rings around the center chunk.
	Rings int
	// WorldSize wraps chunk origins into [0, WorldSize) per axis for a
	// toroidal world. Zero or negative disables wrapping.
	WorldSize float64
	// BaseRes2 is the voxels-per-chunk-edge exponent: every chunk meshes
	// at 1<<BaseRes2 voxels per edge. Zero means 2^5.
	BaseRes2 int
	// Resolution overrides BaseRes2 with a per-ring resolution when set.
	Resolution func(ring int) int
}

func (cfg Config) cascade() cascade.Config {
	res := cfg.Resolution
	if res == nil {
		n := 1 << 5
		if cfg.BaseRes2 > 0 {
			n = 1 << cfg.BaseRes2
		}
		res = func(int) int { return n }
	}
	return cascade.Config{MinSize: cfg.MinSize, Rings: cfg.Rings, Resolution: res}
}

// entity is one live chunk. spawned is false for chunks whose mesh came
// out empty: they hold no sink entity but stay resident so generation is
// not re-attempted every tick.
type entity struct {
	id      EntityID
	spawned bool
}

// Streamer owns the residency state for one field and one sink. It is
// not safe for concurrent use; Update is meant to be called from a
// single coordinating goroutine, typically once per host frame.
type Streamer struct {
	cfg      Config
	field    sdfterrain.SDF3
	sink     Sink
	mesher   *mesher.Mesher
	log      logrus.FieldLogger
	resident *cascade.Residency
	live     map[r3.Vec]entity // keyed by wrapped origin

	lastViewpoint r3.Vec
	started       bool
}

// NewStreamer returns a streamer generating chunks of field on pool and
// handing them to sink. A nil pool generates on the calling goroutine; a
// nil log uses the logrus standard logger.
func NewStreamer(cfg Config, field sdfterrain.SDF3, sink Sink, pool pond.Pool, log logrus.FieldLogger) *Streamer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Streamer{
		cfg:      cfg,
		field:    field,
		sink:     sink,
		mesher:   mesher.NewMesher(pool),
		log:      log,
		resident: cascade.NewResidency(),
		live:     make(map[r3.Vec]entity),
	}
}

// Len returns the number of resident chunks, counting empty ones.
func (s *Streamer) Len() int { return s.resident.Len() }

// Update reconciles live chunks with the cascade around viewpoint. When
// the viewpoint stays within the center cell of the previous successful
// update the chunk set cannot have changed and Update returns early. A
// cascade construction error aborts the update with no partial spawns or
// despawns applied; state is untouched and the next call retries.
func (s *Streamer) Update(viewpoint r3.Vec) error {
	ccfg := s.cfg.cascade()
	if s.started && !ccfg.NeedsNewChunks(s.lastViewpoint, viewpoint) {
		return nil
	}
	start := time.Now()
	chunks, err := ccfg.Chunks(viewpoint)
	if err != nil {
		s.log.WithError(err).Error("chunk cascade construction failed, keeping previous chunk set")
		return err
	}
	desired := make(map[r3.Vec]cascade.Chunk, len(chunks))
	for _, c := range chunks {
		desired[cascade.Wrap(c.Origin, s.cfg.WorldSize)] = c
	}

	despawned := 0
	for key, e := range s.live {
		if _, ok := desired[key]; ok {
			continue
		}
		if e.spawned {
			s.sink.Despawn(e.id)
		}
		s.resident.MarkUnloaded(key)
		delete(s.live, key)
		despawned++
	}

	offset := sdfterrain.OffsetOf(s.field)
	spawned, empty := 0, 0
	for key, c := range desired {
		if s.resident.IsLoaded(key) {
			continue
		}
		mesh := s.mesher.Generate(c, s.field)
		e := entity{}
		if mesh.Empty() {
			empty++
		} else {
			e.id = s.sink.Spawn(c, mesh, r3.Add(c.Origin, offset))
			e.spawned = true
			spawned++
		}
		s.live[key] = e
		s.resident.MarkLoaded(key)
	}

	s.lastViewpoint = viewpoint
	s.started = true
	if spawned+despawned+empty > 0 {
		s.log.WithFields(logrus.Fields{
			"spawned":   spawned,
			"despawned": despawned,
			"empty":     empty,
			"resident":  s.resident.Len(),
			"elapsed":   time.Since(start),
		}).Debug("chunk set reconciled")
	}
	return nil
}
