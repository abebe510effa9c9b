package validation

import (
	"strconv"

	"email-sorter/pkg/query"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ListParams reads skip, limit, search and category from the query string.
// Missing values take their defaults; malformed or out-of-range values are
// reported per parameter.
func ListParams(c *gin.Context) (query.Params, []FieldError) {
	p := query.DefaultParams()
	var errs []FieldError

	if raw, ok := c.GetQuery("skip"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, intParsingError("skip"))
		} else {
			p.Skip = n
		}
	}
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, intParsingError("limit"))
		} else {
			p.Limit = n
		}
	}
	p.Search = c.Query("search")
	p.Category = c.Query("category")

	if len(errs) > 0 {
		return p, errs
	}
	if err := binding.Validator.ValidateStruct(&p); err != nil {
		return p, Translate(err, Query)
	}
	return p, nil
}

// PathID parses a positive integer path parameter.
func PathID(c *gin.Context, name string) (uint, []FieldError) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, []FieldError{{
			Loc:  []string{string(Path), name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		}}
	}
	return uint(n), nil
}

func intParsingError(name string) FieldError {
	return FieldError{
		Loc:  []string{string(Query), name},
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
		Type: "int_parsing",
	}
}
