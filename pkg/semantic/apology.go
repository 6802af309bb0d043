package semantic

import "strings"

// Canned user-facing texts returned by the passthrough helpers when the
// gateway cannot answer. The platform UI is Turkish.
const (
	ChatUnavailable      = "AI şu anda yanıt veremiyor. Lütfen tekrar deneyin."
	ChatFailed           = "Bir hata oluştu. Lütfen tekrar deneyin."
	NoAnswer             = "Yanıt alınamadı."
	ContentUnavailable   = "Şu anda bu içerik hakkında bilgi sağlanamıyor."
	GenericFailure       = "Bir hata oluştu."
	AssistantUnavailable = "Asistan şu anda yanıt veremiyor."
	SummaryUnavailable   = "Özet şu anda alınamıyor."
	SummaryMissing       = "Özet alınamadı."
)

func ChatOrApology(r Result[ChatResult]) ChatResult {
	if r.Err != nil {
		if r.Err.Kind == ErrStatus {
			return ChatResult{Message: ChatUnavailable}
		}
		return ChatResult{Message: ChatFailed}
	}
	if strings.TrimSpace(r.Value.Message) == "" {
		return ChatResult{Message: NoAnswer, Suggestions: r.Value.Suggestions}
	}
	return r.Value
}

func AnswerOrApology(r Result[ContentAnswer]) ContentAnswer {
	if r.Err != nil {
		if r.Err.Kind == ErrStatus {
			return ContentAnswer{Answer: ContentUnavailable}
		}
		return ContentAnswer{Answer: GenericFailure}
	}
	if strings.TrimSpace(r.Value.Answer) == "" {
		return ContentAnswer{Answer: NoAnswer, RelatedQuestions: r.Value.RelatedQuestions}
	}
	return r.Value
}

func AssistantOrApology(r Result[AssistantResult]) AssistantResult {
	if r.Err != nil {
		if r.Err.Kind == ErrStatus {
			return AssistantResult{Message: AssistantUnavailable}
		}
		return AssistantResult{Message: GenericFailure}
	}
	if strings.TrimSpace(r.Value.Message) == "" {
		v := r.Value
		v.Message = NoAnswer
		return v
	}
	return r.Value
}

func SummaryOrApology(r Result[SummaryResult], spoilerFree bool) SummaryResult {
	if r.Err != nil {
		if r.Err.Kind == ErrStatus {
			return SummaryResult{Summary: SummaryUnavailable, SpoilerFree: spoilerFree}
		}
		return SummaryResult{Summary: GenericFailure, SpoilerFree: spoilerFree}
	}
	if strings.TrimSpace(r.Value.Summary) == "" {
		v := r.Value
		v.Summary = SummaryMissing
		return v
	}
	return r.Value
}
