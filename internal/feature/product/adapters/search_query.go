package adapters

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"catalog_backend/internal/feature/product/domain/entity"
	"catalog_backend/internal/platform/db"
)

var productColumns = []string{
	"id", "name", "description", "price", "stock_quantity",
	"category_id", "created_at", "updated_at", "deleted_at",
}

// searchPredicates turns a filter into bound predicates. Live rows only.
func searchPredicates(f entity.SearchFilter) squirrel.And {
	preds := squirrel.And{squirrel.Eq{"deleted_at": nil}}

	if f.Query != "" {
		preds = append(preds, squirrel.Expr("LOWER(name) LIKE ? "+db.LikeEscape, db.ContainsPattern(f.Query)))
	}
	if f.CategoryID != nil {
		preds = append(preds, squirrel.Eq{"category_id": f.CategoryID.String()})
	}
	if f.MinPrice != nil {
		preds = append(preds, squirrel.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		preds = append(preds, squirrel.LtOrEq{"price": *f.MaxPrice})
	}
	if f.InStock {
		preds = append(preds, squirrel.Gt{"stock_quantity": 0})
	}
	return preds
}

// buildSearchQuery returns the page query for f.
func buildSearchQuery(f entity.SearchFilter) (string, []any, error) {
	order := "ASC"
	if f.NewestFirst {
		order = "DESC"
	}

	sql, args, err := squirrel.
		Select(productColumns...).
		From("products").
		Where(searchPredicates(f)).
		OrderBy("created_at "+order, "id ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building search query: %w", err)
	}
	return sql, args, nil
}

// buildCountQuery returns the total-matches query for f, ignoring paging.
func buildCountQuery(f entity.SearchFilter) (string, []any, error) {
	sql, args, err := squirrel.
		Select("COUNT(*)").
		From("products").
		Where(searchPredicates(f)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building count query: %w", err)
	}
	return sql, args, nil
}
