package tmdb

import (
	"strconv"
)

// SearchResult represents a single search result from TMDB.
type SearchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	OriginalLang string  `json:"original_language"`
}

// DisplayTitle returns the appropriate title for the search result.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Date returns the release date for movies or the first air date for TV shows.
func (r SearchResult) Date() string {
	if r.MediaType == MediaTV {
		return r.FirstAirDate
	}
	return r.ReleaseDate
}

// YearInt returns the release year for movies or first air year for TV shows as int.
func (r SearchResult) YearInt() int {
	dateStr := r.Date()
	if len(dateStr) >= 4 {
		if year, err := strconv.Atoi(dateStr[:4]); err == nil {
			return year
		}
	}
	return 0
}

// Year extracts the year from the release or air date.
func (r SearchResult) Year() string {
	source := r.Date()
	if source == "" {
		return "Unknown"
	}
	if len(source) >= 4 {
		return source[:4]
	}
	return source
}

// Metadata holds the TMDB fields marquee stores for a tracked movie or TV show.
type Metadata struct {
	TMDBID        int      `json:"tmdb_id"`
	TMDBType      string   `json:"tmdb_type"`
	Title         string   `json:"title"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	ReleaseDate   string   `json:"release_date"` // first air date for TV
	VoteAverage   float64  `json:"vote_average"`
	IMDBID        string   `json:"imdb_id,omitempty"`
	Runtime       *int     `json:"runtime,omitempty"`
	TotalEpisodes *int     `json:"total_episodes,omitempty"`
	TotalSeasons  *int     `json:"total_seasons,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Status        string   `json:"status,omitempty"` // "Released", "Ended", "Returning Series", ...
}

// Season is a TV season with its episodes.
type Season struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	SeasonNumber int       `json:"season_number"`
	PosterPath   string    `json:"poster_path"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is a single TV episode.
type Episode struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	Runtime       int     `json:"runtime"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
}

// Person is a cast or crew member.
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	KnownForDepartment string `json:"known_for_department"`
	ProfilePath        string `json:"profile_path"`
	Birthday           string `json:"birthday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	Biography          string `json:"biography"`
}

// Account is the TMDB account a session belongs to.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	IncludeAdult bool   `json:"include_adult"`
	Country      string `json:"iso_3166_1"`
	Language     string `json:"iso_639_1"`
}

// AccountItem is one entry of an account's favorite, watchlist or rated list.
type AccountItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Rating       float64 `json:"rating"` // only set for rated lists
}

// DisplayTitle returns the title for movies and the name for TV shows.
func (i AccountItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Date returns the release date for movies or the first air date for TV shows.
func (i AccountItem) Date() string {
	if i.MediaType == MediaTV {
		return i.FirstAirDate
	}
	return i.ReleaseDate
}

// AccountPage is one page of an account list.
type AccountPage struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []AccountItem `json:"results"`
}
