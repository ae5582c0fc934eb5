package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/pokedex-service/internal/app"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
	"github.com/jsamuelsen/pokedex-service/internal/mocks"
	"github.com/jsamuelsen/pokedex-service/internal/platform/logging"
)

func intPtr(v int) *int { return &v }

func pikachuRecord() *domain.PokemonRecord {
	sprite := "https://img/25.png"

	return &domain.PokemonRecord{
		ID:     25,
		Name:   "pikachu",
		Height: 4,
		Weight: 60,
		Types:  []string{"electric"},
		Sprite: &sprite,
		Moves: []domain.LearnedMove{{
			Name:    "growl",
			URL:     "u/45",
			Details: []domain.VersionGroupDetail{{Method: domain.LearnMethodLevelUp, Level: 1}},
		}},
		Stats:     []domain.BaseStat{{Name: "hp", Value: 35}},
		Abilities: []domain.Ability{{Name: "static"}},
	}
}

// setupPokemonRouter wires the handler behind the error middleware the way
// the production router does.
func setupPokemonRouter(t *testing.T, setupMock func(*mocks.MockPokemonClient)) *gin.Engine {
	t.Helper()

	client := mocks.NewMockPokemonClient(t)
	if setupMock != nil {
		setupMock(client)
	}

	service := app.NewPokemonService(app.PokemonServiceConfig{
		Client: client,
		Logger: logging.Discard(),
	})

	router := gin.New()
	router.Use(middleware.ErrorHandler(logging.Discard()))
	NewPokemonHandler(service).RegisterPokemonRoutes(router.Group("/api"))

	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestPokemonHandler_Search(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		body           string
		setupMock      func(*mocks.MockPokemonClient)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "form field",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"pokemon": {"Pikachu"}}.Encode(),
			setupMock: func(m *mocks.MockPokemonClient) {
				m.EXPECT().FetchPokemon(mock.Anything, "pikachu").Return(pikachuRecord(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"number": "25", "name": "Pikachu", "type": "electric",
				"height": 4, "weight": 60, "sprite": "https://img/25.png"}`,
		},
		{
			name:        "json body by number",
			contentType: "application/json",
			body:        `{"pokemon": " 25 "}`,
			setupMock: func(m *mocks.MockPokemonClient) {
				m.EXPECT().FetchPokemon(mock.Anything, "25").Return(pikachuRecord(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"number": "25", "name": "Pikachu", "type": "electric",
				"height": 4, "weight": 60, "sprite": "https://img/25.png"}`,
		},
		{
			name:           "blank field",
			contentType:    "application/x-www-form-urlencoded",
			body:           "pokemon=+++",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": true, "message": "provide a pokemon name or number"}`,
		},
		{
			name:           "missing field",
			contentType:    "application/x-www-form-urlencoded",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": true, "message": "provide a pokemon name or number"}`,
		},
		{
			name:           "malformed json",
			contentType:    "application/json",
			body:           `{"pokemon": `,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": true, "message": "provide a pokemon name or number"}`,
		},
		{
			name:        "unknown pokemon",
			contentType: "application/x-www-form-urlencoded",
			body:        "pokemon=pikachuu",
			setupMock: func(m *mocks.MockPokemonClient) {
				m.EXPECT().FetchPokemon(mock.Anything, "pikachuu").
					Return(nil, domain.NewNotFoundError("pokemon", "pikachuu"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error": true, "message": "pokemon \"pikachuu\" not found"}`,
		},
		{
			name:        "upstream failure",
			contentType: "application/x-www-form-urlencoded",
			body:        "pokemon=pikachu",
			setupMock: func(m *mocks.MockPokemonClient) {
				m.EXPECT().FetchPokemon(mock.Anything, "pikachu").
					Return(nil, domain.NewUpstreamError("pokeapi", "HTTP 503: maintenance"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error": true, "message": "error querying the pokemon API"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupPokemonRouter(t, tt.setupMock)

			req := httptest.NewRequest(http.MethodPost, "/api/pokemon/search/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			w := serve(router, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPokemonHandler_GetMoves(t *testing.T) {
	router := setupPokemonRouter(t, func(m *mocks.MockPokemonClient) {
		m.EXPECT().FetchPokemon(mock.Anything, "pikachu").Return(pikachuRecord(), nil)
		m.EXPECT().FetchMove(mock.Anything, "u/45").Return(&domain.MoveDetail{
			Type:     "normal",
			Accuracy: intPtr(100),
			PP:       intPtr(40),
		}, nil)
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/pokemon/pikachu/moves/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"name": "Pikachu",
		"number": "25",
		"moves": [{"name": "growl", "level": 1, "type": "normal", "power": "--", "accuracy": 100, "pp": 40}]
	}`, w.Body.String())
}

func TestPokemonHandler_GetStats(t *testing.T) {
	router := setupPokemonRouter(t, func(m *mocks.MockPokemonClient) {
		m.EXPECT().FetchPokemon(mock.Anything, "25").Return(pikachuRecord(), nil)
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/pokemon/25/stats/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name": "Pikachu", "number": "25", "stats": [{"name": "hp", "base_stat": 35}]}`, w.Body.String())
}

func TestPokemonHandler_GetAbilities(t *testing.T) {
	router := setupPokemonRouter(t, func(m *mocks.MockPokemonClient) {
		m.EXPECT().FetchPokemon(mock.Anything, "pikachu").Return(pikachuRecord(), nil)
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/pokemon/PIKACHU/abilities/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name": "Pikachu", "number": "25", "abilities": [{"name": "static", "is_hidden": false}]}`, w.Body.String())
}

func TestPokemonHandler_GetProfile(t *testing.T) {
	router := setupPokemonRouter(t, func(m *mocks.MockPokemonClient) {
		m.EXPECT().FetchPokemon(mock.Anything, "pikachu").Return(pikachuRecord(), nil).Once()
		m.EXPECT().FetchMove(mock.Anything, "u/45").Return(nil, domain.NewUpstreamError("pokeapi", "HTTP 500"))
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/pokemon/pikachu/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pikachu", resp["name"])
	assert.Equal(t, []any{}, resp["moves"], "failed enrichment leaves an empty list")
	assert.Len(t, resp["stats"], 1)
	assert.Len(t, resp["abilities"], 1)
}

func TestPokemonHandler_ViewErrors(t *testing.T) {
	paths := []string{
		"/api/pokemon/missingno/",
		"/api/pokemon/missingno/moves/",
		"/api/pokemon/missingno/stats/",
		"/api/pokemon/missingno/abilities/",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			router := setupPokemonRouter(t, func(m *mocks.MockPokemonClient) {
				m.EXPECT().FetchPokemon(mock.Anything, "missingno").
					Return(nil, domain.NewNotFoundError("pokemon", "missingno"))
			})

			w := serve(router, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error": true, "message": "pokemon \"missingno\" not found"}`, w.Body.String())
		})
	}
}

func TestPokemonHandler_RegisterPokemonRoutes(t *testing.T) {
	router := setupPokemonRouter(t, nil)

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"POST /api/pokemon/search/",
		"GET /api/pokemon/:name/",
		"GET /api/pokemon/:name/moves/",
		"GET /api/pokemon/:name/stats/",
		"GET /api/pokemon/:name/abilities/",
	}
	for _, route := range expected {
		assert.True(t, routeMap[route], "missing route: %s", route)
	}
}
