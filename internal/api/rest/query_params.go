package rest

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/world-conquest/internal/api/feed"
	"github.com/feral-file/world-conquest/internal/api/shared/constants"
	"github.com/feral-file/world-conquest/internal/domain"
)

// ListStudentsQueryParams holds query parameters for GET /students
type ListStudentsQueryParams struct {
	Period int `form:"period"`
}

// ParseListStudentsQuery parses query parameters for GET /students
func ParseListStudentsQuery(c *gin.Context) (*ListStudentsQueryParams, error) {
	var params ListStudentsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ListBattlesQueryParams holds query parameters for GET /battles
type ListBattlesQueryParams struct {
	// Filters
	TerritoryID string `form:"territory_id"`
	ClassID     string `form:"class_id"` // matches either side

	Limit int `form:"limit,default=50"`
}

// ParseListBattlesQuery parses query parameters for GET /battles
func ParseListBattlesQuery(c *gin.Context) (*ListBattlesQueryParams, error) {
	var params ListBattlesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// OddsQueryParams holds query parameters for GET /battles/odds.
// Values outside 0-10 are clamped by the resolver.
type OddsQueryParams struct {
	AttackerModifier int `form:"attacker_modifier,default=0"`
	DefenderModifier int `form:"defender_modifier,default=0"`
}

// ParseOddsQuery parses query parameters for GET /battles/odds
func ParseOddsQuery(c *gin.Context) (*OddsQueryParams, error) {
	var params OddsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// PollResultsQueryParams holds query parameters for GET /polls
type PollResultsQueryParams struct {
	ClassID string `form:"class_id"`
	// Date is YYYY-MM-DD, today when omitted
	Date string `form:"date"`
}

// ParsePollResultsQuery parses query parameters for GET /polls
func ParsePollResultsQuery(c *gin.Context) (*PollResultsQueryParams, error) {
	var params PollResultsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParsedDate returns the requested date, nil when omitted
func (p *PollResultsQueryParams) ParsedDate() (*time.Time, error) {
	if strings.TrimSpace(p.Date) == "" {
		return nil, nil
	}
	d, err := domain.ParsePollDate(p.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetChangesQueryParams holds query parameters for GET /changes
type GetChangesQueryParams struct {
	// Anchor returns changes after this cursor
	Anchor *int64 `form:"anchor"`
	// Tables is a comma separated table filter
	Tables string `form:"tables"`

	Limit int `form:"limit,default=100"`
}

// ParseGetChangesQuery parses query parameters for GET /changes
func ParseGetChangesQuery(c *gin.Context) (*GetChangesQueryParams, error) {
	var params GetChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_CHANGES_PAGE_SIZE {
		params.Limit = constants.MAX_CHANGES_PAGE_SIZE
	}

	return &params, nil
}

// TableFilter parses the tables filter
func (p *GetChangesQueryParams) TableFilter() ([]domain.Table, error) {
	tables, err := feed.ParseTables(p.Tables)
	if err != nil {
		return nil, domain.NewValidationError("tables", err.Error())
	}
	return tables, nil
}
