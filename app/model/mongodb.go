package model

import (
	"time"
)

// EntityMeta adalah field-field umum yang dimiliki SEMUA dokumen konten.
// Di-embed inline supaya bentuk dokumen di Mongo tetap flat.
//
// Catatan envelope/respon:
// - _id Mongo tidak pernah ikut (selalu di-project out saat baca).
// - createdBy/modifiedBy dan fileId dianggap field administratif/internal,
//   tidak diserialisasikan ke JSON respon (json:"-").
type EntityMeta struct {
	// ID publik, format "<prefix>-<6 char acak>", immutable, unique per collection.
	ID string `bson:"id" json:"id"`

	CreatedBy string    `bson:"createdBy" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// ModifiedBy/ModifiedAt ditimpa di setiap update (tidak ada history).
	ModifiedBy string    `bson:"modifiedBy,omitempty" json:"-"`
	ModifiedAt time.Time `bson:"modifiedAt,omitempty" json:"modifiedAt"`
}

// FileMeta dimiliki entity yang punya file/gambar di object storage eksternal.
// Lifecycle file terikat ke entity: ganti/hapus entity = hapus file lamanya.
type FileMeta struct {
	// FileID adalah identifier file di object storage (key OSS).
	FileID string `bson:"fileId,omitempty" json:"-"`

	// ShareableLink adalah URL publik yang bisa langsung dipakai frontend.
	ShareableLink string `bson:"shareableLink,omitempty" json:"shareableLink,omitempty"`
}

// Administration: profil staf/pengurus sekolah (collection: administrations).
type Administration struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // foto staf

	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Position    string `bson:"position,omitempty" json:"position,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"` // teks bebas, bukan referensi entity lain
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Announcement: pengumuman sekolah (collection: announcements).
type Announcement struct {
	EntityMeta `bson:",inline"`

	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Student: data siswa (collection: students).
type Student struct {
	EntityMeta `bson:",inline"`

	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	ClassName string `bson:"className,omitempty" json:"className,omitempty"`
	Session   string `bson:"session,omitempty" json:"session,omitempty"`
	Guardian  string `bson:"guardian,omitempty" json:"guardian,omitempty"`
}

// Class: kelas/rombongan belajar (collection: classes).
type Class struct {
	EntityMeta `bson:",inline"`

	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Level: jenjang/tingkatan (collection: levels).
type Level struct {
	EntityMeta `bson:",inline"`

	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

// Blog: artikel blog sekolah (collection: blogs).
type Blog struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // gambar sampul

	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Download: berkas yang bisa diunduh publik (collection: downloads).
type Download struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // berkasnya sendiri

	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// AdmissionForm: formulir pendaftaran (collection: admission_forms).
// Field biaya bernama formFee di SELURUH path (create dan update).
type AdmissionForm struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // file formulir (pdf)

	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	FormFee string `bson:"formFee,omitempty" json:"formFee,omitempty"`
}

// AdmissionInformation: informasi pendaftaran (collection: admission_information).
type AdmissionInformation struct {
	EntityMeta `bson:",inline"`

	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// HomePageCarousel: slide carousel halaman depan (collection: home_page_carousels).
type HomePageCarousel struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // gambar slide

	Title string `bson:"title,omitempty" json:"title,omitempty"`
}

// HomePageGallery: foto galeri halaman depan (collection: home_page_galleries).
type HomePageGallery struct {
	EntityMeta `bson:",inline"`
	FileMeta   `bson:",inline"` // foto galeri

	Title string `bson:"title,omitempty" json:"title,omitempty"`
}

// HomePagePost: post/berita singkat halaman depan (collection: home_page_posts).
type HomePagePost struct {
	EntityMeta `bson:",inline"`

	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// OthersInformation: informasi lain-lain (collection: others_information).
type OthersInformation struct {
	EntityMeta `bson:",inline"`

	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
