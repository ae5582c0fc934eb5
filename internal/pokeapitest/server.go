// Package pokeapitest runs an in-process stand-in for the creature database,
// serving recorded fixtures for tests.
//
// Known creatures are pikachu (25) and ditto (132). Pikachu learns four
// moves by leveling, each with a move fixture. Everything else is a 404
// unless overridden with SetPokemon or SetMove.
package pokeapitest

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

//go:embed testdata/*.json
var fixtures embed.FS

const (
	pokemonPrefix   = "/api/v2/pokemon/"
	movePrefix      = "/api/v2/move/"
	basePlaceholder = "{{BASE}}"
)

// aliases maps accepted identifiers to fixture names.
var aliases = map[string]string{
	"pikachu": "pikachu",
	"25":      "pikachu",
	"ditto":   "ditto",
	"132":     "ditto",
}

// Response is a canned reply that overrides a fixture.
type Response struct {
	Status int
	Body   string
}

// Request is what the server saw for one call.
type Request struct {
	Path   string
	Header http.Header
}

// Server is a fake creature database.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	pokemon  map[string]Response
	moves    map[string]Response
}

// NewServer starts a fake upstream. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		pokemon: make(map[string]Response),
		moves:   make(map[string]Response),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))

	return s
}

// SetPokemon overrides the reply for a creature identifier as it appears in
// the escaped request path.
func (s *Server) SetPokemon(identifier string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pokemon[identifier] = resp
}

// SetMove overrides the reply for a move id.
func (s *Server) SetMove(id string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves[id] = resp
}

// Requests returns the calls served so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)

	return out
}

// CountPrefix returns how many served calls had a path with the prefix.
func (s *Server) CountPrefix(prefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}

	return n
}

// MoveCalls returns how many move records were fetched.
func (s *Server) MoveCalls() int {
	return s.CountPrefix(movePrefix)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.EscapedPath()

	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: path, Header: r.Header.Clone()})
	s.mu.Unlock()

	switch {
	case strings.HasPrefix(path, pokemonPrefix):
		id := strings.Trim(strings.TrimPrefix(path, pokemonPrefix), "/")
		s.reply(w, s.override(s.pokemon, id), "pokemon_"+aliases[id])
	case strings.HasPrefix(path, movePrefix):
		id := strings.Trim(strings.TrimPrefix(path, movePrefix), "/")
		s.reply(w, s.override(s.moves, id), "move_"+id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) override(m map[string]Response, key string) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp, ok := m[key]; ok {
		return &resp
	}

	return nil
}

func (s *Server) reply(w http.ResponseWriter, override *Response, fixture string) {
	if override != nil {
		status := override.Status
		if status == 0 {
			status = http.StatusOK
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(strings.ReplaceAll(override.Body, basePlaceholder, s.URL)))

		return
	}

	body, err := fixtures.ReadFile("testdata/" + fixture + ".json")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(strings.ReplaceAll(string(body), basePlaceholder, s.URL)))
}
