package domain

import "time"

// Category enumerates the product categories accepted by the generation form.
// Unknown codes are tolerated downstream (the prompt builder falls back to a
// generic description), so Category is not validated beyond non-emptiness.
type Category string

const (
	CategoryFashion     Category = "fashion"
	CategoryElectronics Category = "electronics"
	CategoryHome        Category = "home"
	CategoryFood        Category = "food"
	CategoryBeauty      Category = "beauty"
	CategorySports      Category = "sports"
	CategoryOther       Category = "other"
)

// Tone enumerates the copywriting registers a caller can pick.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	TonePersuasive   Tone = "persuasive"
	ToneGenZ         Tone = "genz"
)

// Platform tags one generated copy variant with its destination channel.
type Platform string

const (
	PlatformMarketplace Platform = "marketplace"
	PlatformInstagram   Platform = "instagram"
	PlatformWebsite     Platform = "website"
)

// Platforms lists every channel in the order generations are persisted.
// Exactly one Generation exists per platform for each Product.
var Platforms = []Platform{PlatformMarketplace, PlatformInstagram, PlatformWebsite}

// Product is one persisted submission (image + metadata). It anchors exactly
// three Generations and is immutable after creation; regeneration creates a
// new Product rather than touching an existing one.
type Product struct {
	ID          string
	UserID      string
	ImageURL    string
	ProductName string
	Category    Category
	KeyFeatures string
	CreatedAt   time.Time
}

// Generation is one persisted platform-specific copy variant of a Product.
type Generation struct {
	ID         string
	ProductID  string
	Platform   Platform
	Tone       Tone
	ResultText string
	CreatedAt  time.Time
}

// ProductHistory pairs a product with its generations for history views.
type ProductHistory struct {
	Product     Product
	Generations []Generation
}
