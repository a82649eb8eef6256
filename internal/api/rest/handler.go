package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/world-conquest/internal/api/shared/dto"
	"github.com/feral-file/world-conquest/internal/api/shared/executor"
	"github.com/feral-file/world-conquest/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateClass creates a class for a period with its starting inventory
	// POST /api/v1/classes
	CreateClass(c *gin.Context)

	// ListClasses lists all classes
	// GET /api/v1/classes
	ListClasses(c *gin.Context)

	// CreateStudent enrolls a student into the class of their period
	// POST /api/v1/students
	CreateStudent(c *gin.Context)

	// ListStudents lists the students of a period
	// GET /api/v1/students?period=<period>
	ListStudents(c *gin.Context)

	// SelectCountries replaces a student's selected countries
	// PUT /api/v1/students/:id/countries
	SelectCountries(c *gin.Context)

	// GetStampAccount returns a student's stamp balance and history
	// GET /api/v1/students/:id/stamps
	GetStampAccount(c *gin.Context)

	// CreateTerritory creates a territory
	// POST /api/v1/territories
	CreateTerritory(c *gin.Context)

	// ListTerritories lists territories with the owner colour
	// GET /api/v1/territories
	ListTerritories(c *gin.Context)

	// ListInventory lists a class's units
	// GET /api/v1/classes/:id/inventory
	ListInventory(c *gin.Context)

	// UseUnit consumes one unit, 409 when none are left
	// POST /api/v1/classes/:id/inventory/:unit/use
	UseUnit(c *gin.Context)

	// AwardUnit grants one unit
	// POST /api/v1/classes/:id/inventory/:unit/award
	AwardUnit(c *gin.Context)

	// AwardStamps appends a stamp award or penalty, replaying on a repeated idempotency_key
	// POST /api/v1/stamps
	AwardStamps(c *gin.Context)

	// ExecuteBattle resolves and records a battle
	// POST /api/v1/battles
	ExecuteBattle(c *gin.Context)

	// ListBattles lists battles newest first
	// GET /api/v1/battles?territory_id=<id>&class_id=<id>&limit=<limit>
	ListBattles(c *gin.Context)

	// GetOdds previews win chances
	// GET /api/v1/battles/odds?attacker_modifier=<n>&defender_modifier=<n>
	GetOdds(c *gin.Context)

	// SubmitPoll records a student's poll response for a day
	// PUT /api/v1/polls
	SubmitPoll(c *gin.Context)

	// GetPollResults tallies a day, for every class when class_id is omitted
	// GET /api/v1/polls?class_id=<id>&date=<YYYY-MM-DD>
	GetPollResults(c *gin.Context)

	// GetChanges pages through the changes journal in cursor order
	// GET /api/v1/changes?anchor=<cursor>&tables=<table1>,<table2>&limit=<limit>
	GetChanges(c *gin.Context)

	// GetLatestChangeCursor returns the highest journal cursor
	// GET /api/v1/changes/latest
	GetLatestChangeCursor(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	class, err := h.executor.CreateClass(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *handler) ListClasses(c *gin.Context) {
	classes, err := h.executor.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list classes")
		return
	}

	c.JSON(http.StatusOK, dto.NewItemsResponse(classes))
}

func (h *handler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	student, err := h.executor.CreateStudent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create student")
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *handler) ListStudents(c *gin.Context) {
	queryParams, err := ParseListStudentsQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	students, err := h.executor.ListStudents(c.Request.Context(), domain.Period(queryParams.Period))
	if err != nil {
		respondError(c, err, "Failed to list students")
		return
	}

	c.JSON(http.StatusOK, dto.NewItemsResponse(students))
}

func (h *handler) SelectCountries(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		respondBadRequest(c, "Student ID is required")
		return
	}

	var req dto.SelectCountriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	student, err := h.executor.SelectCountries(c.Request.Context(), studentID, req)
	if err != nil {
		respondError(c, err, "Failed to select countries")
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *handler) GetStampAccount(c *gin.Context) {
	account, err := h.executor.GetStampAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get stamp account")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *handler) CreateTerritory(c *gin.Context) {
	var req dto.CreateTerritoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	territory, err := h.executor.CreateTerritory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create territory")
		return
	}

	c.JSON(http.StatusCreated, territory)
}

func (h *handler) ListTerritories(c *gin.Context) {
	territories, err := h.executor.ListTerritories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list territories")
		return
	}

	c.JSON(http.StatusOK, dto.NewItemsResponse(territories))
}

func (h *handler) ListInventory(c *gin.Context) {
	entries, err := h.executor.ListInventory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list inventory")
		return
	}

	c.JSON(http.StatusOK, dto.NewItemsResponse(entries))
}

func (h *handler) UseUnit(c *gin.Context) {
	entry, err := h.executor.UseUnit(c.Request.Context(), c.Param("id"), domain.UnitType(c.Param("unit")))
	if err != nil {
		respondError(c, err, "Failed to use unit")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *handler) AwardUnit(c *gin.Context) {
	entry, err := h.executor.AwardUnit(c.Request.Context(), c.Param("id"), domain.UnitType(c.Param("unit")))
	if err != nil {
		respondError(c, err, "Failed to award unit")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *handler) AwardStamps(c *gin.Context) {
	var req dto.AwardStampsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	response, err := h.executor.AwardStamps(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to award stamps")
		return
	}

	// A replayed award returns the original transaction
	status := http.StatusCreated
	if !response.Created {
		status = http.StatusOK
	}
	c.JSON(status, response)
}

func (h *handler) ExecuteBattle(c *gin.Context) {
	var req dto.ExecuteBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	response, err := h.executor.ExecuteBattle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to execute battle")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) ListBattles(c *gin.Context) {
	queryParams, err := ParseListBattlesQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	battles, err := h.executor.ListBattles(
		c.Request.Context(),
		queryParams.TerritoryID,
		queryParams.ClassID,
		&queryParams.Limit,
	)
	if err != nil {
		respondError(c, err, "Failed to list battles")
		return
	}

	c.JSON(http.StatusOK, dto.NewItemsResponse(battles))
}

func (h *handler) GetOdds(c *gin.Context) {
	queryParams, err := ParseOddsQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.executor.GetOdds(queryParams.AttackerModifier, queryParams.DefenderModifier))
}

func (h *handler) SubmitPoll(c *gin.Context) {
	var req dto.SubmitPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	response, err := h.executor.SubmitPoll(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit poll response")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetPollResults(c *gin.Context) {
	queryParams, err := ParsePollResultsQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	date, err := queryParams.ParsedDate()
	if err != nil {
		respondError(c, err, "Invalid date")
		return
	}

	response, err := h.executor.GetPollResults(c.Request.Context(), queryParams.ClassID, date)
	if err != nil {
		respondError(c, err, "Failed to get poll results")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetChanges(c *gin.Context) {
	queryParams, err := ParseGetChangesQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	tables, err := queryParams.TableFilter()
	if err != nil {
		respondError(c, err, "Invalid tables filter")
		return
	}

	response, err := h.executor.GetChanges(c.Request.Context(), queryParams.Anchor, tables, &queryParams.Limit)
	if err != nil {
		respondError(c, err, "Failed to get changes")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetLatestChangeCursor(c *gin.Context) {
	response, err := h.executor.GetLatestChangeCursor(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get latest change cursor")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck reports degraded when the record store is unreachable
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"service": "world-conquest-api",
			"error":   fmt.Sprintf("database: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "world-conquest-api",
	})
}
