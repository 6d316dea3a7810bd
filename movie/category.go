package movie

// Category is a catalog grouping tag (platform, language or genre).
type Category string

const (
	CategoryAmazonPrimeVideo     Category = "amzn-prime-video"
	CategoryDisneyHotstar        Category = "disney-hotstar"
	CategorySonyLiv              Category = "sony-live"
	CategoryZee5                 Category = "zee5"
	CategoryJioCinema            Category = "jiocinema"
	CategoryHoichoi              Category = "hoichoi"
	CategoryAlt                  Category = "alt"
	CategoryBengali              Category = "bengali"
	CategoryGujarati             Category = "gujarati"
	CategoryPunjabi              Category = "punjabi"
	CategoryMarathi              Category = "marathi"
	CategoryHindiDubbedMovies    Category = "hindi-dubbed-movies"
	CategoryHollywoodHindiDubbed Category = "hollywood-hindi-dubbed"
	CategorySouthHindiDubbed     Category = "south-hindi-dubbed"
	CategoryBollywoodMovies      Category = "bollywood-movies"
	CategoryWebSeries            Category = "web-series"
	CategoryDualAudioMovies      Category = "dual-audio-movies"
	CategoryNetflix              Category = "netflix"
)

// Categories lists every tag the category listing accepts.
var Categories = []Category{
	CategoryAmazonPrimeVideo,
	CategoryDisneyHotstar,
	CategorySonyLiv,
	CategoryZee5,
	CategoryJioCinema,
	CategoryHoichoi,
	CategoryAlt,
	CategoryBengali,
	CategoryGujarati,
	CategoryPunjabi,
	CategoryMarathi,
	CategoryHindiDubbedMovies,
	CategoryHollywoodHindiDubbed,
	CategorySouthHindiDubbed,
	CategoryBollywoodMovies,
	CategoryWebSeries,
	CategoryDualAudioMovies,
	CategoryNetflix,
}

var allowedCategories = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValidCategory reports whether name is one of the whitelisted tags.
// The comparison is exact: no trimming or case folding.
func IsValidCategory(name string) bool {
	_, ok := allowedCategories[Category(name)]
	return ok
}
