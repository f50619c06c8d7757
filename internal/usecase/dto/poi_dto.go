package dto

// POISearchQuery - параметры текстового поиска POI
type POISearchQuery struct {
	Query      string   `query:"q" validate:"required,min=1,max=200"`
	Lat        *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lng        *float64 `query:"lng" validate:"omitempty,min=-180,max=180"`
	Radius     float64  `query:"radius" validate:"omitempty,gt=0"`
	Categories []string `query:"categories" validate:"omitempty,dive,poi_category"`
	Limit      int      `query:"limit" validate:"omitempty,min=1,max=100"`
}

// POINearbyQuery - POI вокруг точки
type POINearbyQuery struct {
	Lat        *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lng        *float64 `query:"lng" validate:"required,min=-180,max=180"`
	Radius     float64  `query:"radius" validate:"omitempty,gt=0"`
	Categories []string `query:"categories" validate:"omitempty,dive,poi_category"`
	Limit      int      `query:"limit" validate:"omitempty,min=1,max=500"`
}

// POIBBoxQuery - POI в прямоугольнике
type POIBBoxQuery struct {
	MinLat     float64  `query:"min_lat" validate:"min=-90,max=90"`
	MinLng     float64  `query:"min_lng" validate:"min=-180,max=180"`
	MaxLat     float64  `query:"max_lat" validate:"min=-90,max=90,gtefield=MinLat"`
	MaxLng     float64  `query:"max_lng" validate:"min=-180,max=180,gtefield=MinLng"`
	Categories []string `query:"categories" validate:"omitempty,dive,poi_category"`
	Limit      int      `query:"limit" validate:"omitempty,min=1,max=1000"`
}
