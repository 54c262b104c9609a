package animalloo

// Category identifies one kind of pet-related facility. The set of valid
// categories is closed: every category produced by an Interpreter or accepted
// by the search engine belongs to it. An empty category set always means
// "no category restriction", never "no results".
type Category string

// The category vocabulary, in catalog order.
const (
	CategoryHospital      Category = "hospital"
	CategoryPharmacy      Category = "pharmacy"
	CategoryGrooming      Category = "grooming"
	CategoryCultureCenter Category = "culture_center"
	CategoryMuseum        Category = "museum"
	CategoryArtGallery    Category = "art_gallery"
	CategoryTravel        Category = "travel"
	CategoryCareService   Category = "care_service"
	CategoryPension       Category = "pension"
	CategoryPetSupplies   Category = "pet_supplies"
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
)

// categories is the ordered vocabulary. Callers only ever see copies.
var categories = []Category{
	CategoryHospital,
	CategoryPharmacy,
	CategoryGrooming,
	CategoryCultureCenter,
	CategoryMuseum,
	CategoryArtGallery,
	CategoryTravel,
	CategoryCareService,
	CategoryPension,
	CategoryPetSupplies,
	CategoryRestaurant,
	CategoryCafe,
}

// Categories returns the ordered category vocabulary as a fresh slice.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether c belongs to the category vocabulary.
func ValidCategory(c Category) bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidCategories reports whether every category in cs belongs to the
// vocabulary. The empty set is valid.
func ValidCategories(cs []Category) bool {
	for _, c := range cs {
		if !ValidCategory(c) {
			return false
		}
	}
	return true
}
