package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies an exact solve of a graph.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// HeuristicKey identifies a greedy coloring of a graph.
	HeuristicKey(graphHash string) string
}

// ResultKeyOpts are the solver settings that can change a result.
type ResultKeyOpts struct {
	Backend   string        `json:"backend"`
	TimeLimit time.Duration `json:"time_limit"`
	WarmStart bool          `json:"warm_start"`
}

// Hash returns the hex SHA-256 of data (64 characters). The pipeline uses
// it on the structural encoding of a graph.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultKeyer produces "result:<sha256>" and "heuristic:<graph hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey hashes the graph hash together with opts, so any setting that
// may change the optimum found gets its own entry.
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	// Marshalling a string and a struct of scalars cannot fail.
	data, _ := json.Marshal(struct {
		Graph string        `json:"graph"`
		Opts  ResultKeyOpts `json:"opts"`
	}{graphHash, opts})
	return "result:" + Hash(data)
}

// HeuristicKey depends on the graph alone; the heuristic has no options.
func (DefaultKeyer) HeuristicKey(graphHash string) string {
	return "heuristic:" + graphHash
}

// ScopedKeyer namespaces another Keyer. The CLI scopes by release, so a
// build with a changed model never reads results cached by an older one:
//
//	keyer := cache.NewScopedKeyer(nil, buildinfo.Version)
type ScopedKeyer struct {
	Inner Keyer
	Scope string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil.
// An empty scope leaves keys unchanged.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope == "" {
		return inner
	}
	return ScopedKeyer{Inner: inner, Scope: scope}
}

func (k ScopedKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return k.Scope + ":" + k.Inner.ResultKey(graphHash, opts)
}

func (k ScopedKeyer) HeuristicKey(graphHash string) string {
	return k.Scope + ":" + k.Inner.HeuristicKey(graphHash)
}
