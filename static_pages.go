package ogengine

// pageBundle is the compiled-in metadata of a page that has no store row.
type pageBundle struct {
	Title       string
	Description string
	Image       string // optional, defaults to SiteConfig.DefaultImage
	Type        string
}

var paymentBundle = pageBundle{
	Title:       "Secure Payment | Boracay.House",
	Description: "Complete your Boracay.House booking with our secure payment page.",
	Type:        "website",
}

// staticBundles is keyed by the page names produced by Classify.
var staticBundles = map[string]pageBundle{
	"home": {
		Title:       "Boracay.House | Vacation Rentals & Properties for Sale in Boracay",
		Description: "Hand-picked villas, apartments and homes in Boracay. Book your island stay or find a property to buy with Boracay.House.",
		Type:        "website",
	},
	"airbnb": {
		Title:       "Airbnb Stays in Boracay | Boracay.House",
		Description: "Browse our Superhost-managed Airbnb homes in Boracay, from beachfront studios to family villas.",
		Type:        "website",
	},
	"for-sale": {
		Title:       "Boracay Properties for Sale | Boracay.House",
		Description: "Houses, condos and lots for sale in Boracay, with local guidance from viewing to title transfer.",
		Type:        "website",
	},
	"about": {
		Title:       "About Us | Boracay.House",
		Description: "Meet the small team behind Boracay.House and learn how we look after guests and owners on the island.",
		Type:        "profile",
	},
	"contact": {
		Title:       "Contact Boracay.House",
		Description: "Questions about a stay, a property or management? Message the Boracay.House team and we will get back to you quickly.",
		Type:        "website",
	},
	"guest-help": {
		Title:       "Guest Help & FAQ | Boracay.House",
		Description: "Arrival directions, check-in instructions, house rules and answers to common guest questions.",
		Type:        "website",
	},
	"vacation-rental-management": {
		Title:       "Vacation Rental Management in Boracay | Boracay.House",
		Description: "Full-service short-term rental management for Boracay owners: listings, pricing, guests, cleaning and maintenance.",
		Type:        "website",
	},
	"payment":         paymentBundle,
	"payment-success": paymentBundle,
	"privacy-policy": {
		Title:       "Privacy Policy | Boracay.House",
		Description: "How Boracay.House collects, uses and protects your personal information.",
		Type:        "website",
	},
	"we-do-better": {
		Title:       "Why We Do Better | Boracay.House",
		Description: "What sets Boracay.House apart from other rental and property services on the island.",
		Type:        "website",
	},
	"favorites": {
		Title:       "Your Favorites | Boracay.House",
		Description: "The Boracay homes and properties you have saved for later.",
		Type:        "website",
	},
}

var blogListingBundle = pageBundle{
	Title:       "Boracay Travel & Property Blog | Boracay.House",
	Description: "Island guides, travel tips and property market insights from the Boracay.House team.",
	Type:        "blog",
}
