package http

// Request and response bodies of the routes in api/openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Confirmation struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type LaunchRequest struct {
	PackageID  string   `json:"package_id"`
	DdtName    string   `json:"ddt_name"`
	RackColumn string   `json:"rack_column"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type LaunchResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	PackageID    string `json:"package_id"`
	ControlKey   string `json:"control_key"`
	SelectedRack string `json:"selected_rack"`
}

type PackageStatus struct {
	PackageID    string  `json:"package_id"`
	Status       string  `json:"status"`
	EmailSent    bool    `json:"email_sent"`
	SelectedRack *string `json:"selected_rack"`
	RemoteStatus *string `json:"remote_status,omitempty"`
}

type Credential struct {
	Status    string  `json:"status"`
	PackageID string  `json:"package_id"`
	MailID    string  `json:"mail_id"`
	OTP       int     `json:"otp"`
	Rack      *string `json:"rack"`
}

type ResetRequest struct {
	ControlKey string `json:"control_key"`
}

type PickupRequest struct {
	DdtName    string `json:"ddt_name"`
	RackColumn string `json:"rack_column"`
}

type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ControlKey struct {
	Status     string  `json:"status"`
	DdtName    string  `json:"ddt_name"`
	ControlKey string  `json:"control_key"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type Rack struct {
	RackNumber int    `json:"rack_number"`
	RackName   string `json:"rack_name"`
	RackColumn string `json:"rack_column"`
}

type Tower struct {
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TotalRacks     int     `json:"total_racks"`
	AvailableRacks []Rack  `json:"available_racks"`
	AvailableCount int     `json:"available_count"`
}

// GetTowersParams are the optional query parameters of GET /api/ddts.
type GetTowersParams struct {
	Lat *float64 `form:"lat" json:"lat,omitempty"`
	Lng *float64 `form:"lng" json:"lng,omitempty"`
}

// ListPackagesParams are the optional query parameters of GET /api/packages.
type ListPackagesParams struct {
	Status *string `form:"status" json:"status,omitempty"`
}

type PackageSummary struct {
	PackageID            string   `json:"package_id"`
	Status               string   `json:"status"`
	DroneID              *string  `json:"drone_id"`
	DdtName              *string  `json:"ddt_name"`
	RackColumn           *string  `json:"rack_column"`
	DestinationLatitude  *float64 `json:"destination_lat"`
	DestinationLongitude *float64 `json:"destination_lng"`
	CredentialIssued     bool     `json:"credential_issued"`
	UpdatedAt            string   `json:"last_update_time"`
}

type Drone struct {
	DroneID        string   `json:"drone_id"`
	SourceLat      *float64 `json:"source_lat"`
	SourceLng      *float64 `json:"source_lng"`
	DestinationLat *float64 `json:"destination_lat"`
	DestinationLng *float64 `json:"destination_lng"`
	Gripper1       *string  `json:"gripper_1"`
	Gripper2       *string  `json:"gripper_2"`
	Gripper3       *string  `json:"gripper_3"`
}

type DroneDestination struct {
	DroneID        string   `json:"drone_id"`
	PackageID      string   `json:"package_id"`
	DestinationLat *float64 `json:"destination_lat"`
	DestinationLng *float64 `json:"destination_lng"`
	Ddts           []Tower  `json:"ddts"`
}

type DroneCoordinatesRequest struct {
	SourceLat      *float64 `json:"source_lat"`
	SourceLng      *float64 `json:"source_lng"`
	DestinationLat *float64 `json:"destination_lat"`
	DestinationLng *float64 `json:"destination_lng"`
}

type ValidateOtpRequest struct {
	OTP string `json:"otp"`
}

type ValidateOtpResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	DoorOpened bool    `json:"door_opened"`
	PackageID  string  `json:"package_id,omitempty"`
	Rack       *string `json:"rack,omitempty"`
}
