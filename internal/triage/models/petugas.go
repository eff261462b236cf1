package models

// Petugas adalah karyawan IGD (suster atau dokter) yang boleh login.
type Petugas struct {
	ID_Karyawan int    `json:"id_karyawan"`
	Nama        string `json:"nama"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	ID_Role     int    `json:"id_role"`
	Role        string `json:"role"`
}
