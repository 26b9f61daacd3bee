package repository

import "strings"

// sortClause はホワイトリストに基づいてORDER BY句を組み立てます。
// 未知のソートキー・方向はリクエストを失敗させず、既定値に落とす。
func sortClause(columns map[string]string, sortBy, order, defaultColumn, defaultOrder string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = defaultColumn
	}
	switch strings.ToLower(order) {
	case "asc", "desc":
		order = strings.ToLower(order)
	default:
		order = defaultOrder
	}
	return column + " " + strings.ToUpper(order)
}
