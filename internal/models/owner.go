package models

// Виды контента, к которому могут привязываться галереи и отзывы.
const (
	OwnerPlace  = "place"
	OwnerTemple = "temple"
	OwnerSite   = "site"
	OwnerEvent  = "event"
)

// OwnerRef — типизированная ссылка «принадлежит ровно одному из»:
// месту, храму, мифологическому объекту или событию.
//
// В хранилище она по-прежнему раскладывается в четыре nullable-колонки,
// но на уровне валидации допускается ровно одна непустая ссылка.
type OwnerRef struct {
	Kind string // place, temple, site или event
	ID   int64  // Идентификатор владельца
}

// OwnerRefFromIDs собирает OwnerRef из четырёх nullable-идентификаторов.
// Возвращает ValidationError, если не задан ни один или задано больше одного.
func OwnerRefFromIDs(placeID, templeID, siteID, eventID *int64) (OwnerRef, *ValidationError) {
	var ref OwnerRef
	count := 0
	if placeID != nil {
		ref = OwnerRef{Kind: OwnerPlace, ID: *placeID}
		count++
	}
	if templeID != nil {
		ref = OwnerRef{Kind: OwnerTemple, ID: *templeID}
		count++
	}
	if siteID != nil {
		ref = OwnerRef{Kind: OwnerSite, ID: *siteID}
		count++
	}
	if eventID != nil {
		ref = OwnerRef{Kind: OwnerEvent, ID: *eventID}
		count++
	}
	switch count {
	case 0:
		return OwnerRef{}, NewValidationError("owner", "must reference a place, temple, site or event")
	case 1:
		return ref, nil
	default:
		return OwnerRef{}, NewValidationError("owner", "must reference exactly one content type")
	}
}

// IDs раскладывает ссылку обратно в четыре nullable-идентификатора для хранилища.
func (r OwnerRef) IDs() (placeID, templeID, siteID, eventID *int64) {
	id := r.ID
	switch r.Kind {
	case OwnerPlace:
		placeID = &id
	case OwnerTemple:
		templeID = &id
	case OwnerSite:
		siteID = &id
	case OwnerEvent:
		eventID = &id
	}
	return placeID, templeID, siteID, eventID
}
