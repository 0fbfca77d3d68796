package dto

// QRData is the attendance claim decoded from a scanned or self-generated QR
// code. Type must be "presensi" for the claim to be accepted.
type QRData struct {
	UserID    string `json:"userId"`
	Nama      string `json:"nama"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

type ScanInput struct {
	QRData   *QRData `json:"qr_data"`
	ScanTime string  `json:"scan_time"`
}

type ScanResponse struct {
	Status string `json:"status"`
	Waktu  string `json:"waktu"`
}
