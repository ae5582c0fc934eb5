package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/pokedex-service/internal/app"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
)

// PokemonHandler serves the creature lookup endpoints. Failures are attached
// to the gin context and rendered by middleware.ErrorHandler.
type PokemonHandler struct {
	service *app.PokemonService
}

// NewPokemonHandler creates a new pokemon handler.
func NewPokemonHandler(service *app.PokemonService) *PokemonHandler {
	return &PokemonHandler{
		service: service,
	}
}

// Search handles POST /api/pokemon/search/
// Accepts the identifier as a form field or JSON body and returns the summary.
//
// @Summary Search for a pokemon
// @Tags pokemon
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param pokemon formData string true "Name or number"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/pokemon/search/ [post]
func (h *PokemonHandler) Search(c *gin.Context) {
	var req dto.SearchRequest

	// A body that cannot be bound is treated as a missing identifier.
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(domain.NewInvalidIdentifierError(err.Error()))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), req.Pokemon)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSummary(summary))
}

// GetProfile handles GET /api/pokemon/:name/
// Returns summary, moves, stats and abilities from one record fetch.
//
// @Summary Get a full pokemon profile
// @Tags pokemon
// @Produce json
// @Param name path string true "Name or number"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/pokemon/{name}/ [get]
func (h *PokemonHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(profile))
}

// GetMoves handles GET /api/pokemon/:name/moves/
//
// @Summary Get level-up moves
// @Tags pokemon
// @Produce json
// @Param name path string true "Name or number"
// @Success 200 {object} dto.MovesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/pokemon/{name}/moves/ [get]
func (h *PokemonHandler) GetMoves(c *gin.Context) {
	moves, err := h.service.Moves(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMoves(moves))
}

// GetStats handles GET /api/pokemon/:name/stats/
//
// @Summary Get base stats
// @Tags pokemon
// @Produce json
// @Param name path string true "Name or number"
// @Success 200 {object} dto.StatsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/pokemon/{name}/stats/ [get]
func (h *PokemonHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStats(stats))
}

// GetAbilities handles GET /api/pokemon/:name/abilities/
//
// @Summary Get abilities
// @Tags pokemon
// @Produce json
// @Param name path string true "Name or number"
// @Success 200 {object} dto.AbilitiesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/pokemon/{name}/abilities/ [get]
func (h *PokemonHandler) GetAbilities(c *gin.Context) {
	abilities, err := h.service.Abilities(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAbilities(abilities))
}

// RegisterPokemonRoutes registers pokemon routes on the given router group.
func (h *PokemonHandler) RegisterPokemonRoutes(rg *gin.RouterGroup) {
	pokemon := rg.Group("/pokemon")
	pokemon.POST("/search/", h.Search)
	pokemon.GET("/:name/", h.GetProfile)
	pokemon.GET("/:name/moves/", h.GetMoves)
	pokemon.GET("/:name/stats/", h.GetStats)
	pokemon.GET("/:name/abilities/", h.GetAbilities)
}
