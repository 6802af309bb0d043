package narrative

import (
	"sort"
	"time"

	"saga-be/internal/entity"
)

// Fixed per-item estimates used by the yearly digest.
const (
	HoursPerFilm   = 2
	HoursPerSeries = 10
	PagesPerBook   = 300
	favouritesPer  = 3
	unknownMonth   = "Bilinmiyor"
)

// YearlyDigest is the lighter yearly-summary aggregate. Only completed
// library entries count toward the totals.
type YearlyDigest struct {
	Year            int      `json:"yil"`
	Films           int      `json:"toplamFilm"`
	Series          int      `json:"toplamDizi"`
	Books           int      `json:"toplamKitap"`
	FilmHours       int      `json:"toplamSaatFilm"`
	SeriesHours     int      `json:"toplamSaatDizi"`
	BookPages       int      `json:"toplamSayfaKitap"`
	FavouriteGenres []string `json:"enSevdigiTurler"`
	FavouriteFilms  []string `json:"enSevdigiFilmler"`
	FavouriteSeries []string `json:"enSevdigiDiziler"`
	FavouriteBooks  []string `json:"enSevdigiKitaplar"`
	AverageFilm     float64  `json:"ortalamaFilmPuani"`
	AverageSeries   float64  `json:"ortalamaDiziPuani"`
	AverageBook     float64  `json:"ortalamaKitapPuani"`
	MostActiveMonth string   `json:"enAktifAy"`
	HasInteractions bool     `json:"-"`
}

func (d YearlyDigest) Total() int {
	return d.Films + d.Series + d.Books
}

func BuildYearlyDigest(year int, library []*entity.LibraryEntry, ratings []*entity.Rating, loc *time.Location) YearlyDigest {
	if loc == nil {
		loc = time.UTC
	}

	d := YearlyDigest{
		Year:            year,
		FavouriteGenres: []string{},
		MostActiveMonth: unknownMonth,
		HasInteractions: len(library) > 0 || len(ratings) > 0,
	}

	genres := newCounter()
	months := map[int]int{}
	for _, entry := range library {
		if entry.Content == nil || !entry.Status.IsCompleted() {
			continue
		}
		switch entry.Content.Kind {
		case entity.KindMovie:
			d.Films++
		case entity.KindSeries:
			d.Series++
		case entity.KindBook:
			d.Books++
		}
		months[int(entry.UpdatedAt.In(loc).Month())]++

		md, report := ParseMetadata(entry.Content.Metadata)
		if report.Invalid {
			continue
		}
		for _, g := range md.Genres {
			genres.add(g)
		}
		for _, c := range md.Categories {
			genres.add(c)
		}
	}

	d.FilmHours = d.Films * HoursPerFilm
	d.SeriesHours = d.Series * HoursPerSeries
	d.BookPages = d.Books * PagesPerBook
	d.FavouriteGenres = genres.top(favouritesPer)

	d.FavouriteFilms, d.AverageFilm = favourites(ratings, entity.KindMovie)
	d.FavouriteSeries, d.AverageSeries = favourites(ratings, entity.KindSeries)
	d.FavouriteBooks, d.AverageBook = favourites(ratings, entity.KindBook)

	if m, n := busiestMonth(months); n > 0 {
		d.MostActiveMonth = MonthName(m)
	}
	return d
}

// favourites returns the top titles by the user's own score and the
// average score for one kind.
func favourites(ratings []*entity.Rating, kind entity.Kind) ([]string, float64) {
	var picked []*entity.Rating
	var sum float64
	for _, r := range ratings {
		if r.Content == nil || r.Content.Kind != kind {
			continue
		}
		picked = append(picked, r)
		sum += r.Score
	}
	if len(picked) == 0 {
		return []string{}, 0
	}

	avg := round1(sum / float64(len(picked)))
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Score > picked[j].Score
	})
	if len(picked) > favouritesPer {
		picked = picked[:favouritesPer]
	}
	titles := make([]string, len(picked))
	for i, r := range picked {
		titles[i] = r.Content.Title
	}
	return titles, avg
}
