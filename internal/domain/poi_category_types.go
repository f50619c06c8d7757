package domain

// POICategory - закрытый список категорий POI
type POICategory string

// Культура
const (
	CategoryMuseum       POICategory = "museum"
	CategoryGallery      POICategory = "gallery"
	CategoryTheater      POICategory = "theater"
	CategoryMonument     POICategory = "monument"
	CategoryHistorical   POICategory = "historical"
	CategoryArchitecture POICategory = "architecture"
)

// Природа
const (
	CategoryPark      POICategory = "park"
	CategoryGarden    POICategory = "garden"
	CategoryViewpoint POICategory = "viewpoint"
	CategoryBeach     POICategory = "beach"
	CategoryLake      POICategory = "lake"
	CategoryWaterfall POICategory = "waterfall"
	CategoryMountain  POICategory = "mountain"
	CategoryForest    POICategory = "forest"
)

// Еда
const (
	CategoryRestaurant POICategory = "restaurant"
	CategoryCafe       POICategory = "cafe"
	CategoryBar        POICategory = "bar"
	CategoryBakery     POICategory = "bakery"
	CategoryStreetFood POICategory = "street_food"
)

// Развлечения
const (
	CategoryEntertainment POICategory = "entertainment"
	CategoryCinema        POICategory = "cinema"
	CategoryAmusementPark POICategory = "amusement_park"
	CategoryZoo           POICategory = "zoo"
	CategoryAquarium      POICategory = "aquarium"
)

// Активности
const (
	CategoryHikingTrail POICategory = "hiking_trail"
	CategoryCycling     POICategory = "cycling"
	CategoryWaterSports POICategory = "water_sports"
	CategoryClimbing    POICategory = "climbing"
)

// Шопинг
const (
	CategoryMarket   POICategory = "market"
	CategoryShopping POICategory = "shopping"
	CategorySouvenir POICategory = "souvenir"
)

// Прочее
const (
	CategoryReligious POICategory = "religious"
	CategoryCemetery  POICategory = "cemetery"
	CategoryOther     POICategory = "other"
)

// CategoryGroup - группа категорий для UI
type CategoryGroup struct {
	Code       string        `json:"code"`
	Categories []POICategory `json:"categories"`
}

// CategoryGroups - группировка категорий для интерфейса
var CategoryGroups = []CategoryGroup{
	{Code: "culture", Categories: []POICategory{
		CategoryMuseum, CategoryGallery, CategoryTheater,
		CategoryMonument, CategoryHistorical, CategoryArchitecture,
	}},
	{Code: "nature", Categories: []POICategory{
		CategoryPark, CategoryGarden, CategoryViewpoint, CategoryBeach,
		CategoryLake, CategoryWaterfall, CategoryMountain, CategoryForest,
	}},
	{Code: "food", Categories: []POICategory{
		CategoryRestaurant, CategoryCafe, CategoryBar, CategoryBakery, CategoryStreetFood,
	}},
	{Code: "entertainment", Categories: []POICategory{
		CategoryEntertainment, CategoryCinema, CategoryAmusementPark, CategoryZoo, CategoryAquarium,
	}},
	{Code: "activities", Categories: []POICategory{
		CategoryHikingTrail, CategoryCycling, CategoryWaterSports, CategoryClimbing,
	}},
	{Code: "shopping", Categories: []POICategory{
		CategoryMarket, CategoryShopping, CategorySouvenir,
	}},
}

// AllCategories - все категории, включая не входящие в группы
var AllCategories = []POICategory{
	CategoryMuseum, CategoryGallery, CategoryTheater, CategoryMonument, CategoryHistorical, CategoryArchitecture,
	CategoryPark, CategoryGarden, CategoryViewpoint, CategoryBeach, CategoryLake, CategoryWaterfall, CategoryMountain, CategoryForest,
	CategoryRestaurant, CategoryCafe, CategoryBar, CategoryBakery, CategoryStreetFood,
	CategoryEntertainment, CategoryCinema, CategoryAmusementPark, CategoryZoo, CategoryAquarium,
	CategoryHikingTrail, CategoryCycling, CategoryWaterSports, CategoryClimbing,
	CategoryMarket, CategoryShopping, CategorySouvenir,
	CategoryReligious, CategoryCemetery, CategoryOther,
}

var categorySet = func() map[POICategory]struct{} {
	m := make(map[POICategory]struct{}, len(AllCategories))
	for _, c := range AllCategories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValid проверяет, что категория входит в закрытый список
func (c POICategory) IsValid() bool {
	_, ok := categorySet[c]
	return ok
}

// ContainsCategory проверяет наличие категории в наборе
func ContainsCategory(set []POICategory, c POICategory) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// CategoryOSMTags - соответствие категорий тегам OSM ("key=value" или "key=*")
var CategoryOSMTags = map[POICategory][]string{
	CategoryMuseum:       {"tourism=museum"},
	CategoryGallery:      {"tourism=gallery", "amenity=arts_centre"},
	CategoryTheater:      {"amenity=theatre"},
	CategoryMonument:     {"historic=monument", "historic=memorial"},
	CategoryHistorical:   {"historic=*"},
	CategoryArchitecture: {"building=cathedral", "building=church", "tourism=attraction"},

	CategoryPark:      {"leisure=park", "leisure=nature_reserve"},
	CategoryGarden:    {"leisure=garden", "tourism=garden"},
	CategoryViewpoint: {"tourism=viewpoint"},
	CategoryBeach:     {"natural=beach"},
	CategoryLake:      {"natural=water", "water=lake"},
	CategoryWaterfall: {"waterway=waterfall"},
	CategoryMountain:  {"natural=peak"},
	CategoryForest:    {"natural=wood", "landuse=forest"},

	CategoryRestaurant: {"amenity=restaurant"},
	CategoryCafe:       {"amenity=cafe"},
	CategoryBar:        {"amenity=bar", "amenity=pub"},
	CategoryBakery:     {"shop=bakery"},
	CategoryStreetFood: {"amenity=fast_food", "shop=deli"},

	CategoryEntertainment: {"leisure=*"},
	CategoryCinema:        {"amenity=cinema"},
	CategoryAmusementPark: {"tourism=theme_park", "leisure=amusement_park"},
	CategoryZoo:           {"tourism=zoo"},
	CategoryAquarium:      {"tourism=aquarium"},

	CategoryHikingTrail: {"route=hiking"},
	CategoryCycling:     {"route=bicycle", "amenity=bicycle_rental"},
	CategoryWaterSports: {"sport=swimming", "sport=surfing", "sport=diving"},
	CategoryClimbing:    {"sport=climbing"},

	CategoryMarket:   {"amenity=marketplace", "shop=market"},
	CategoryShopping: {"shop=mall", "shop=department_store"},
	CategorySouvenir: {"shop=gift", "shop=souvenir"},

	CategoryReligious: {"amenity=place_of_worship"},
	CategoryCemetery:  {"landuse=cemetery"},
	CategoryOther:     {},
}
