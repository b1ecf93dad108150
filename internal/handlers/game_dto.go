package handlers

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type PlayParams struct {
	Rows      int    `schema:"rows"`
	Cols      int    `schema:"cols"`
	Mines     int    `schema:"mines"`
	Placement string `schema:"placement"`
}

// ParsePlayParams reads the board from the query. Missing keys keep the
// values in defaults.
func ParsePlayParams(query url.Values, defaults session.Params) (session.Params, error) {
	dto := PlayParams{
		Rows:      defaults.Rows,
		Cols:      defaults.Cols,
		Mines:     defaults.Mines,
		Placement: defaults.Placement.String(),
	}
	if err := decoder.Decode(&dto, query); err != nil {
		return session.Params{}, fmt.Errorf("%w: %w", session.ErrBadParams, err)
	}
	placement, ok := mines.ParsePlacement(dto.Placement)
	if !ok {
		return session.Params{}, fmt.Errorf("%w: unknown placement %q",
			session.ErrBadParams, dto.Placement)
	}
	params := session.Params{
		Rows:      dto.Rows,
		Cols:      dto.Cols,
		Mines:     dto.Mines,
		Placement: placement,
	}
	return params, params.Validate()
}
