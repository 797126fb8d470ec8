package helper

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
)

// HTTPHelper shapes responses and translates validation failures.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

var defaultHelper = &HTTPHelper{}

// SendError writes the taxonomy-mapped status and the caller-safe message.
func SendError(c *gin.Context, err error) {
	defaultHelper.SendError(c, err)
}

func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"message": apperrors.PublicMessage(err),
		"code":    string(apperrors.KindOf(err)),
	})
}

// SendValidationError reports binding failures as a per-field error map.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	if u.Translator != nil {
		errorTranslation := validationErrors.Translate(u.Translator)
		for _, err := range validationErrors {
			errKey := Underscore(err.Field())
			errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
		}
	} else {
		for _, err := range validationErrors {
			errKey := Underscore(err.Field())
			errorResponse[errKey] = append(errorResponse[errKey], err.Tag())
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"message": "validation failed",
		"code":    string(apperrors.KindInvalidArgument),
		"fields":  errorResponse,
	})
}

// GetPagingUrl builds the URL of a page of the current listing.
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
}

// GeneratePaging builds the pagination envelope for list responses.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page int, totalRecord int64) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if page > 1 && page <= totalPages {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}
	if page < totalPages {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links": map[string]interface{}{
			"previous": prevURL,
			"next":     nextURL,
			"first":    firstURL,
			"last":     lastURL,
		},
	}
}
