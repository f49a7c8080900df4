package identify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"submatch/internal/identify/guessapi"
	"submatch/internal/logging"
	"submatch/internal/mediafile"
	"submatch/internal/request"
	"submatch/internal/textutil"
)

// EpisodeDetector extracts season/episode numbering from a filename.
type EpisodeDetector interface {
	Detect(name string) (season, episode int, ok bool)
}

// Settings bundle the resolver parameters for the two lookup classes.
type Settings struct {
	GuessOptions    request.Options
	FeaturesOptions request.Options
	Retry           request.RetryPolicy
}

// Observer receives every state transition for a path.
type Observer func(path string, result Result)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver registers a transition callback. The callback runs on the
// identifying goroutine and must not call back into the coordinator.
func WithObserver(observer Observer) Option {
	return func(c *Coordinator) {
		c.observer = observer
	}
}

type resolvedKey struct {
	identity Identity
	path     string
}

// Coordinator owns all identification state for one batch: the processing
// and failed sets, per-path results, and the MovieKey reuse table. All
// mutation happens under the single mutex; remote calls run outside it.
type Coordinator struct {
	resolver *request.Coordinator
	service  guessapi.Guesser
	episodes EpisodeDetector
	settings Settings
	logger   *slog.Logger
	observer Observer

	mu         sync.Mutex
	batchID    string
	generation uint64
	processing map[string]uint64
	failed     map[string]struct{}
	results    map[string]Result
	resolved   map[string]resolvedKey
}

// NewCoordinator builds a coordinator. episodes may be nil, which disables
// episode enrichment.
func NewCoordinator(resolver *request.Coordinator, service guessapi.Guesser, episodes EpisodeDetector, settings Settings, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		resolver:   resolver,
		service:    service,
		episodes:   episodes,
		settings:   settings,
		logger:     logging.NewComponentLogger(logger, "identify"),
		batchID:    uuid.NewString(),
		processing: make(map[string]uint64),
		failed:     make(map[string]struct{}),
		results:    make(map[string]Result),
		resolved:   make(map[string]resolvedKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BatchID returns the identifier of the current batch.
func (c *Coordinator) BatchID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batchID
}

// Identify resolves one file to a terminal Result. Safe for concurrent use
// across different paths; a second call for a path that is already guessing
// returns immediately with the in-flight state instead of doubling work.
// Completion order across paths is unspecified.
func (c *Coordinator) Identify(ctx context.Context, file mediafile.FileEntry) Result {
	key := MovieKey(file.Path)

	c.mu.Lock()
	if existing, ok := c.results[file.Path]; ok && existing.State.Terminal() {
		c.mu.Unlock()
		return existing
	}
	if _, inFlight := c.processing[file.Path]; inFlight {
		c.mu.Unlock()
		return Result{State: StateGuessing}
	}
	c.generation++
	token := c.generation
	c.processing[file.Path] = token
	reuse, hasReuse := c.resolved[key]
	batchID := c.batchID
	c.mu.Unlock()

	c.emit(file.Path, Result{State: StateGuessing})

	var result Result
	var base *Identity
	if hasReuse {
		identity := reuse.identity
		identity.Reason = "reused from " + reuse.path
		identity = c.enrich(ctx, file, identity)
		if identity.Kind != KindEpisode {
			// Reuse still schedules feature hydration; episode enrichment
			// already did it when numbering was found.
			c.features(ctx, identity.IMDBID)
		}
		result = Result{State: StateResolved, Identity: &identity}
		c.logger.Info("identity reused",
			logging.String("path", file.Path),
			logging.String("origin", reuse.path),
			logging.String(logging.FieldBatchID, batchID))
	} else {
		result, base = c.identifyFresh(ctx, file, batchID)
	}

	return c.settle(file.Path, key, token, result, base)
}

// ResultFor returns the recorded result for a path.
func (c *Coordinator) ResultFor(path string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.results[path]
	return result, ok
}

// Failed reports whether a path is in the failed set.
func (c *Coordinator) Failed(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.failed[path]
	return ok
}

// ClearFile drops all markers for a path so a later pass may re-attempt
// it. An already-dispatched identification for the path completes but its
// result is discarded.
func (c *Coordinator) ClearFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.processing, path)
	delete(c.failed, path)
	delete(c.results, path)
}

// Reset clears every set and table and starts a new batch. In-flight
// identifications from the old batch complete but their results are
// discarded.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batchID = uuid.NewString()
	c.processing = make(map[string]uint64)
	c.failed = make(map[string]struct{})
	c.results = make(map[string]Result)
	c.resolved = make(map[string]resolvedKey)
}

// identifyFresh runs the full guess flow: filename query first, directory
// fallback second. base is the pre-enrichment identity used for MovieKey
// reuse; nil unless the file resolved.
func (c *Coordinator) identifyFresh(ctx context.Context, file mediafile.FileEntry, batchID string) (Result, *Identity) {
	guess, err := c.resolveGuess(ctx, detectionName(file))
	if err != nil {
		c.logger.Warn("filename guess failed",
			logging.String("path", file.Path),
			logging.String(logging.FieldBatchID, batchID),
			logging.Error(err))
		return Result{State: StateFailed, Err: err.Error()}, nil
	}

	reason := "filename match"
	if guess == nil {
		dirName, query := DirectoryQuery(file.Path)
		if query == "" {
			return Result{State: StateNoMatch}, nil
		}
		guess, err = c.resolveGuess(ctx, query)
		if err != nil {
			c.logger.Warn("directory guess failed",
				logging.String("path", file.Path),
				logging.String("query", query),
				logging.String(logging.FieldBatchID, batchID),
				logging.Error(err))
			return Result{State: StateFailed, Err: err.Error()}, nil
		}
		if guess == nil {
			return Result{State: StateNoMatch}, nil
		}
		reason = "directory match: " + dirName
	}

	base := identityFromGuess(guess, reason)
	final := c.enrich(ctx, file, base)
	c.logger.Info("identity resolved",
		logging.String("path", file.Path),
		logging.String("imdb_id", final.IMDBID),
		logging.String("title", final.FormattedTitle()),
		logging.String("reason", final.Reason),
		logging.String(logging.FieldBatchID, batchID))
	return Result{State: StateResolved, Identity: &final}, &base
}

// settle records a terminal result unless the path's state was reset while
// the identification was in flight.
func (c *Coordinator) settle(path, key string, token uint64, result Result, base *Identity) Result {
	c.mu.Lock()
	current, active := c.processing[path]
	if !active || current != token {
		c.mu.Unlock()
		c.logger.Debug("discarding result for reset path", logging.String("path", path))
		return Result{State: StateIdle}
	}
	delete(c.processing, path)
	c.results[path] = result
	switch result.State {
	case StateFailed:
		c.failed[path] = struct{}{}
	case StateResolved:
		if base != nil {
			// Latest resolution wins so reuse always reflects the freshest
			// answer for the key.
			c.resolved[key] = resolvedKey{identity: *base, path: path}
		}
	}
	c.mu.Unlock()

	c.emit(path, result)
	return result
}

func (c *Coordinator) emit(path string, result Result) {
	if c.observer != nil {
		c.observer(path, result)
	}
}

// resolveGuess runs one query through the resolver with retries. nil with
// nil error means a definitive no-match (including structurally unusable
// answers, which are treated as no-match rather than failures).
func (c *Coordinator) resolveGuess(ctx context.Context, query string) (*guessapi.MovieGuess, error) {
	value, found, err := c.resolver.ResolveWithRetry(ctx, "guess:"+query, c.guessProducer(query), c.settings.GuessOptions, c.settings.Retry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var guess guessapi.MovieGuess
	if err := json.Unmarshal([]byte(value), &guess); err != nil {
		c.logger.Warn("discarding malformed cached guess", logging.String("query", query), logging.Error(err))
		return nil, nil
	}
	if !guess.Usable() {
		return nil, nil
	}
	return &guess, nil
}

func (c *Coordinator) guessProducer(query string) request.Producer {
	return func(ctx context.Context) (string, bool, error) {
		guess, err := c.service.GuessMovie(ctx, query)
		if err != nil {
			return "", false, err
		}
		if !guess.Usable() {
			return "", false, nil
		}
		payload, err := json.Marshal(guess)
		if err != nil {
			return "", false, err
		}
		return string(payload), true, nil
	}
}

// enrich upgrades a series identity to an episode identity when the
// filename carries usable numbering. Failures leave the series identity
// intact; enrichment is an enhancement, not a requirement.
func (c *Coordinator) enrich(ctx context.Context, file mediafile.FileEntry, identity Identity) Identity {
	if identity.Kind != KindSeries || c.episodes == nil {
		return identity
	}
	season, episode, ok := c.episodes.Detect(detectionName(file))
	if !ok {
		return identity
	}

	enriched := identity
	enriched.Kind = KindEpisode
	enriched.SeriesID = identity.IMDBID
	enriched.Season = season
	enriched.Episode = episode

	if features := c.features(ctx, identity.IMDBID); features != nil {
		if ep, found := features.EpisodeAt(season, episode); found {
			if ep.IMDBID != "" {
				enriched.IMDBID = ep.IMDBID
			}
			enriched.EpisodeTitle = ep.Title
		}
	}
	return enriched
}

// features hydrates the feature record behind an IMDB id, degrading to nil
// on any failure.
func (c *Coordinator) features(ctx context.Context, imdbID string) *guessapi.FeatureSet {
	producer := func(ctx context.Context) (string, bool, error) {
		features, err := c.service.FeaturesByID(ctx, imdbID)
		if err != nil {
			return "", false, err
		}
		if features == nil {
			return "", false, nil
		}
		payload, err := json.Marshal(features)
		if err != nil {
			return "", false, err
		}
		return string(payload), true, nil
	}

	value, found, err := c.resolver.Resolve(ctx, "features:"+imdbID, producer, c.settings.FeaturesOptions)
	if err != nil {
		c.logger.Debug("feature hydration failed", logging.String("imdb_id", imdbID), logging.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	var features guessapi.FeatureSet
	if err := json.Unmarshal([]byte(value), &features); err != nil {
		c.logger.Warn("discarding malformed cached feature set", logging.String("imdb_id", imdbID), logging.Error(err))
		return nil
	}
	return &features
}

// detectionName is the query string for an entry. Videos use their filename
// verbatim; orphaned subtitles drop the subtitle extension and a trailing
// language token so the query reads like a release name.
func detectionName(file mediafile.FileEntry) string {
	if file.Kind != mediafile.KindSubtitle {
		return file.Name
	}
	base := file.BaseName()
	if idx := strings.LastIndexByte(base, '.'); idx > 0 && textutil.IsLanguageToken(base[idx+1:]) {
		base = base[:idx]
	}
	return base
}

func identityFromGuess(guess *guessapi.MovieGuess, reason string) Identity {
	kind := KindMovie
	switch strings.ToLower(strings.TrimSpace(guess.Kind)) {
	case "series", "tv", "show":
		kind = KindSeries
	case "episode":
		kind = KindEpisode
	}
	return Identity{
		IMDBID: guess.IMDBID,
		Title:  guess.Title,
		Year:   guess.Year,
		Kind:   kind,
		Reason: reason,
	}
}
