package dto

type DashboardResponse struct {
	TotalGuru        int64 `json:"total_guru"`
	HadirHariIni     int64 `json:"hadir_hari_ini"`
	TerlambatHariIni int64 `json:"terlambat_hari_ini"`
	BelumPresensi    int64 `json:"belum_presensi"`
}
