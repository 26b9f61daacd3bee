package webutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go_lang_portal/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードし、構造体タグでバリデーションします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("VALIDATION_ERROR", "リクエストボディが必要です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("VALIDATION_ERROR", "リクエストボディの形式が不正です。", "", model.ErrInvalidInput)
	}

	if err := Validator.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationErrorResponse(verrs)
		}
		return model.NewAppError("VALIDATION_ERROR", "入力値の検証に失敗しました。", "", model.ErrInvalidInput)
	}
	return nil
}

// ParsePage はpageクエリパラメータを返します。不正値は既定の1に落とす
// (一覧系はパラメータ不正でリクエストを失敗させない)。
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPage はper_pageクエリパラメータを返します (上限max、既定def)
func ParsePerPage(r *http.Request, def, max int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return def
	}
	if perPage > max {
		return max
	}
	return perPage
}

// ParseSort はsort_by/orderクエリパラメータをそのまま返します。
// ホワイトリスト照合と既定値へのフォールバックはリポジトリ層が行う。
func ParseSort(r *http.Request) (sortBy, order string) {
	return r.URL.Query().Get("sort_by"), r.URL.Query().Get("order")
}

// TotalPages は総件数とページサイズから総ページ数を計算します
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
