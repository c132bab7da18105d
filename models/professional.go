package models

// LocationMode distinguishes where a service is rendered.
type LocationMode string

const (
	ModeSalon  LocationMode = "SALON"
	ModeMobile LocationMode = "MOBILE"
)

// ServiceOffering is one bookable service on a professional's menu.
type ServiceOffering struct {
	ServiceID       string  `bson:"service_id" json:"serviceId"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"durationMinutes"`
	BufferMinutes   int     `bson:"buffer_minutes" json:"bufferMinutes"`
	SalonPrice      float64 `bson:"salon_price" json:"salonPrice"`
	MobilePrice     float64 `bson:"mobile_price" json:"mobilePrice"`
	MobileAvailable bool    `bson:"mobile_available" json:"mobileAvailable"`
}

// Professional is the availability-relevant view of a professional document.
// Account, media and review fields live with the external profile service.
type Professional struct {
	ID           string            `bson:"id" json:"id"`
	DisplayName  string            `bson:"display_name" json:"displayName"`
	Timezone     string            `bson:"timezone" json:"timezone"`
	WorkingHours WeeklyHours       `bson:"working_hours" json:"workingHours"`
	Offerings    []ServiceOffering `bson:"offerings" json:"offerings"`
	FCMToken     string            `bson:"fcm_token,omitempty" json:"-"`
}

// Offering returns the professional's offering for serviceID, if any.
func (p *Professional) Offering(serviceID string) (ServiceOffering, bool) {
	for _, o := range p.Offerings {
		if o.ServiceID == serviceID {
			return o, true
		}
	}
	return ServiceOffering{}, false
}
