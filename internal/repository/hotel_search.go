package repository

import (
    "context"
    "strings"
)

// HotelSearchQuery defines filters & pagination for searching hotels.
type HotelSearchQuery struct {
    Name          string
    City          string
    MinPriceCents uint64
    MaxPriceCents uint64
    Page          int
    PageSize      int
}

// PublicHotelRow is a search hit: hotel facts plus the cheapest active
// room type, so listings can show a "from" price.
type PublicHotelRow struct {
    ID            uint64  `json:"id"`
    Name          string  `json:"name"`
    City          string  `json:"city"`
    Description   *string `json:"description,omitempty"`
    MinPriceCents uint64  `json:"min_price_cents"`
    MinPrice      float64 `json:"min_price"`
}

// Search returns active hotels matching the query plus the total hit
// count for pagination.  Price bounds apply to the hotel's cheapest
// active room type.
func (r *HotelRepo) Search(ctx context.Context, q HotelSearchQuery) ([]PublicHotelRow, int64, error) {
    where := []string{"h.is_active = 1"}
    args := []any{}

    if q.Name != "" {
        where = append(where, "LOWER(h.name) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.Name)+"%")
    }
    if q.City != "" {
        where = append(where, "LOWER(h.city) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.City)+"%")
    }

    having := []string{}
    if q.MinPriceCents > 0 {
        having = append(having, "min_price_cents >= ?")
    }
    if q.MaxPriceCents > 0 {
        having = append(having, "min_price_cents <= ?")
    }

    cond := strings.Join(where, " AND ")
    havingCond := ""
    havingArgs := []any{}
    if len(having) > 0 {
        havingCond = " HAVING " + strings.Join(having, " AND ")
        if q.MinPriceCents > 0 {
            havingArgs = append(havingArgs, q.MinPriceCents)
        }
        if q.MaxPriceCents > 0 {
            havingArgs = append(havingArgs, q.MaxPriceCents)
        }
    }

    countSQL := `SELECT COUNT(*) FROM (
            SELECT h.id, COALESCE(MIN(rt.base_price_cents), 0) AS min_price_cents
            FROM hotels h
            LEFT JOIN room_types rt ON rt.hotel_id = h.id AND rt.is_active = 1
            WHERE ` + cond + `
            GROUP BY h.id` + havingCond + `
        ) hits`
    countArgs := append(append([]any{}, args...), havingArgs...)

    var total int64
    if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
        return nil, 0, err
    }

    limit := q.PageSize
    offset := (q.Page - 1) * q.PageSize

    dataSQL := `SELECT
            h.id,
            h.name,
            h.city,
            h.description,
            COALESCE(MIN(rt.base_price_cents), 0) AS min_price_cents
        FROM hotels h
        LEFT JOIN room_types rt ON rt.hotel_id = h.id AND rt.is_active = 1
        WHERE ` + cond + `
        GROUP BY h.id, h.name, h.city, h.description` + havingCond + `
        ORDER BY h.id ASC
        LIMIT ? OFFSET ?`

    argsData := append(append(append([]any{}, args...), havingArgs...), limit, offset)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]PublicHotelRow, 0, limit)
    for rows.Next() {
        var d PublicHotelRow
        if err := rows.Scan(
            &d.ID,
            &d.Name,
            &d.City,
            &d.Description,
            &d.MinPriceCents,
        ); err != nil {
            return nil, 0, err
        }
        d.MinPrice = float64(d.MinPriceCents) / 100.0
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
