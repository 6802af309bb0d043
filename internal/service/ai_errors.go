package service

import (
	"net/http"

	"saga-be/internal/pkg/serverutils"
)

// Client-facing errors. Each is a WebError so the error handler can emit the
// status and message directly; wrap them with %w to attach internal detail
// that is logged but never shown.
var (
	ErrEmptyQuestion    = serverutils.NewWebError(http.StatusBadRequest, "Soru boş olamaz.")
	ErrEmptyQuery       = serverutils.NewWebError(http.StatusBadRequest, "Arama sorgusu boş olamaz.")
	ErrEmptyAssistant   = serverutils.NewWebError(http.StatusBadRequest, "Sorgu boş olamaz.")
	ErrQueryTooShort    = serverutils.NewWebError(http.StatusBadRequest, "Arama sorgusu en az 2 karakter olmalıdır.")
	ErrEmptyDescription = serverutils.NewWebError(http.StatusBadRequest, "Tanım boş olamaz.")
	ErrNoMessages       = serverutils.NewWebError(http.StatusBadRequest, "En az bir mesaj gerekli.")
	ErrNothingToIndex   = serverutils.NewWebError(http.StatusBadRequest, "İndexlenecek içerik yok.")
	ErrInvalidYear      = serverutils.NewWebError(http.StatusBadRequest, "Geçersiz yıl.")
	ErrInvalidContentId = serverutils.NewWebError(http.StatusBadRequest, "Geçersiz içerik id.")
	ErrUnauthenticated  = serverutils.NewWebError(http.StatusUnauthorized, "Oturum açmanız gerekiyor.")
	ErrForbidden        = serverutils.NewWebError(http.StatusForbidden, "Bu işlem için yetkiniz yok.")
	ErrContentNotFound  = serverutils.NewWebError(http.StatusNotFound, "İçerik bulunamadı.")

	ErrAskFailed             = serverutils.NewWebError(http.StatusInternalServerError, "Soru yanıtlanırken bir hata oluştu.")
	ErrIdentifyFailed        = serverutils.NewWebError(http.StatusInternalServerError, "İçerik tanımlama sırasında bir hata oluştu.")
	ErrSearchFailed          = serverutils.NewWebError(http.StatusInternalServerError, "Arama sırasında bir hata oluştu.")
	ErrContentQuestionFailed = serverutils.NewWebError(http.StatusInternalServerError, "İçerik hakkındaki soru yanıtlanırken bir hata oluştu.")
	ErrChatFailed            = serverutils.NewWebError(http.StatusInternalServerError, "Sohbet sırasında bir hata oluştu.")
	ErrAssistantFailed       = serverutils.NewWebError(http.StatusInternalServerError, "Asistan hatası oluştu.")
	ErrContentSumFailed      = serverutils.NewWebError(http.StatusInternalServerError, "Özet alınırken bir hata oluştu.")
	ErrSummaryFailed         = serverutils.NewWebError(http.StatusInternalServerError, "Özet oluşturulurken bir hata oluştu.")
	ErrYearlyFailed          = serverutils.NewWebError(http.StatusInternalServerError, "Yıllık özet oluşturulurken bir hata oluştu.")
	ErrIndexFailed           = serverutils.NewWebError(http.StatusInternalServerError, "Index güncellenemedi.")
	ErrIndexUpdateFailed     = serverutils.NewWebError(http.StatusInternalServerError, "Index güncelleme sırasında bir hata oluştu.")
	ErrIndexQueueFailed      = serverutils.NewWebError(http.StatusInternalServerError, "Index işi kuyruğa alınamadı.")
	ErrBookSearchFailed      = serverutils.NewWebError(http.StatusInternalServerError, "Kitap araması sırasında bir hata oluştu.")
)
