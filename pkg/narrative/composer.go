package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"saga-be/internal/pkg/logger"
	"saga-be/pkg/llm"
	"saga-be/pkg/metrics"

	"github.com/goccy/go-json"
)

const (
	InsufficientData = "Bu yıl için yeterli veri bulunamadı."
	NoSummaryTitle   = "Özet bulunamadı"

	StagePrimary   = "primary"
	StageSecondary = "secondary"
	StageTemplate  = "template"
	StageEmpty     = "empty"
)

const summarySystemPrompt = `Sen Saga platformunun yıllık özet yapay zekasısın.
KURALLAR:
- Türkçe yaz, samimi ve eğlenceli ol
- 4-6 cümle ile özet yaz
- İstatistikleri yaratıcı yorumla
- Emojiler kullan 🎬📚🎭
- Kişiselleştirilmiş öneriler ekle`

const yearlySystemPrompt = `Sen Saga platformunun yaratıcı yapay zekasısın. Kullanıcının yıllık izleme/okuma istatistiklerini analiz edip kişiselleştirilmiş, samimi ve eğlenceli bir yıl özeti yazacaksın.

KURALLAR:
- Türkçe yaz
- Samimi ve eğlenceli bir ton kullan
- İstatistikleri yaratıcı şekilde yorumla
- Kullanıcının tercihlerine göre kişiselleştirilmiş öneriler yap
- Emojiler kullan 🎬📚🎭
- Maksimum 300 kelime
- Cevabı sadece özet metni olarak ver, başka açıklama ekleme`

// Result carries the narrative and the tier that produced it.
type Result struct {
	Narrative     string
	Stage         string
	GeneratedByAI bool
}

// Composer narrates statistics with a primary LLM, then a secondary one,
// then a fixed template. Either provider may be nil.
type Composer struct {
	primary   llm.LLMProvider
	secondary llm.LLMProvider
	logger    logger.ILogger
}

func NewComposer(primary, secondary llm.LLMProvider, log logger.ILogger) *Composer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Composer{primary: primary, secondary: secondary, logger: log}
}

// Compose never fails: the fallback template is pure formatting.
func (c *Composer) Compose(ctx context.Context, flow, system, user string, fallback func() string) Result {
	for _, tier := range []struct {
		stage    string
		provider llm.LLMProvider
	}{
		{StagePrimary, c.primary},
		{StageSecondary, c.secondary},
	} {
		if tier.provider == nil {
			continue
		}
		text, err := tier.provider.Chat(ctx, []llm.Message{llm.System(system), llm.User(user)})
		if err == nil && strings.TrimSpace(text) != "" {
			metrics.RecordFallbackStage(flow, tier.stage)
			return Result{Narrative: strings.TrimSpace(text), Stage: tier.stage, GeneratedByAI: true}
		}
		details := map[string]interface{}{"flow": flow, "provider": tier.provider.Name(), "stage": tier.stage}
		if err != nil && !errors.Is(err, llm.ErrEmptyCompletion) {
			details["error"] = err.Error()
		}
		c.logger.Warn("NARRATIVE", "Provider produced no narrative", details)
	}

	metrics.RecordFallbackStage(flow, StageTemplate)
	return Result{Narrative: fallback(), Stage: StageTemplate}
}

// Summary narrates a YearlyStats. Empty input short-circuits without any
// provider call.
func (c *Composer) Summary(ctx context.Context, year int, in StatsInput) (Result, YearlyStats) {
	if in.Empty() {
		metrics.RecordFallbackStage("summary", StageEmpty)
		return Result{Narrative: InsufficientData, Stage: StageEmpty}, EmptyStats()
	}

	stats := BuildStats(in)
	payload, _ := json.Marshal(stats)
	user := fmt.Sprintf("Yıl: %d\nİstatistikler: %s\nKullanıcı için kişiselleştirilmiş bir özet yaz.", year, payload)

	res := c.Compose(ctx, "summary", summarySystemPrompt, user, func() string {
		return SummaryTemplate(year, stats)
	})
	return res, stats
}

// YearlySummary narrates a YearlyDigest with the same three tiers.
func (c *Composer) YearlySummary(ctx context.Context, digest YearlyDigest) Result {
	if !digest.HasInteractions {
		metrics.RecordFallbackStage("yearly_summary", StageEmpty)
		return Result{Narrative: InsufficientData, Stage: StageEmpty}
	}
	return c.Compose(ctx, "yearly_summary", yearlySystemPrompt, YearlyPrompt(digest), func() string {
		return YearlyTemplate(digest)
	})
}

func SummaryTemplate(year int, stats YearlyStats) string {
	genres := stats.TopGenres
	if len(genres) > 3 {
		genres = genres[:3]
	}
	genreText := strings.Join(genres, ", ")
	if genreText == "" {
		genreText = "çeşit çeşit"
	}
	return fmt.Sprintf("🎬 %d yılında %d içerik tükettiniz! Toplam %d saat izleme ve %d sayfa okuma ile harika bir yıl geçirmişsiniz! En sevdiğiniz türler: %s. Tebrikler! 🎉",
		year, stats.TotalCount, stats.TotalMinutes/60, stats.TotalPages, genreText)
}

func YearlyTemplate(d YearlyDigest) string {
	return fmt.Sprintf("🎬 %d yılında %d içerik tükettiniz! %d film (%d saat), %d dizi (%d saat), %d kitap (%d sayfa) ile harika bir yıl geçirmişsiniz! En aktif olduğunuz ay: %s. Tebrikler! 🎉",
		d.Year, d.Total(), d.Films, d.FilmHours, d.Series, d.SeriesHours, d.Books, d.BookPages, d.MostActiveMonth)
}

func YearlyPrompt(d YearlyDigest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Kullanıcının %d yılı istatistikleri:\n\n", d.Year)
	b.WriteString("📊 GENEL İSTATİSTİKLER:\n")
	fmt.Fprintf(&b, "- İzlenen Film: %d adet (%d saat)\n", d.Films, d.FilmHours)
	fmt.Fprintf(&b, "- İzlenen Dizi: %d adet (%d saat)\n", d.Series, d.SeriesHours)
	fmt.Fprintf(&b, "- Okunan Kitap: %d adet (%d sayfa)\n\n", d.Books, d.BookPages)
	b.WriteString("⭐ PUANLAMALAR:\n")
	fmt.Fprintf(&b, "- Ortalama Film Puanı: %.1f/10\n", d.AverageFilm)
	fmt.Fprintf(&b, "- Ortalama Dizi Puanı: %.1f/10\n", d.AverageSeries)
	fmt.Fprintf(&b, "- Ortalama Kitap Puanı: %.1f/10\n\n", d.AverageBook)
	fmt.Fprintf(&b, "🎭 FAVORİ TÜRLER: %s\n\n", strings.Join(d.FavouriteGenres, ", "))
	fmt.Fprintf(&b, "🎬 EN SEVDİĞİ FİLMLER: %s\n", strings.Join(d.FavouriteFilms, ", "))
	fmt.Fprintf(&b, "📺 EN SEVDİĞİ DİZİLER: %s\n", strings.Join(d.FavouriteSeries, ", "))
	fmt.Fprintf(&b, "📚 EN SEVDİĞİ KİTAPLAR: %s\n\n", strings.Join(d.FavouriteBooks, ", "))
	fmt.Fprintf(&b, "📅 EN AKTİF AY: %s\n\n", d.MostActiveMonth)
	b.WriteString("Bu verilere dayanarak kullanıcı için kişiselleştirilmiş, eğlenceli bir yıl özeti yaz.")
	return b.String()
}
