package repository

// Nama collection MongoDB per entity (satu collection per entity).
// Prefix id entity sengaja disandingkan di sini supaya service tidak
// mengarang string sendiri-sendiri.
const (
	CollAdministrations      = "administrations"
	CollAnnouncements        = "announcements"
	CollStudents             = "students"
	CollClasses              = "classes"
	CollLevels               = "levels"
	CollBlogs                = "blogs"
	CollDownloads            = "downloads"
	CollAdmissionForms       = "admission_forms"
	CollAdmissionInformation = "admission_information"
	CollHomePageCarousels    = "home_page_carousels"
	CollHomePageGalleries    = "home_page_galleries"
	CollHomePagePosts        = "home_page_posts"
	CollOthersInformation    = "others_information"
)

// ContentCollections mengembalikan seluruh collection konten.
// Dipakai di dua tempat: pembuatan unique index "id" saat startup,
// dan fan-out hitung total di dashboard.
func ContentCollections() []string {
	return []string{
		CollAdministrations,
		CollAnnouncements,
		CollStudents,
		CollClasses,
		CollLevels,
		CollBlogs,
		CollDownloads,
		CollAdmissionForms,
		CollAdmissionInformation,
		CollHomePageCarousels,
		CollHomePageGalleries,
		CollHomePagePosts,
		CollOthersInformation,
	}
}
