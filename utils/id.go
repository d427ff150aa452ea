package utils

import (
	"crypto/rand"
)

// idCharset: huruf kecil + angka, dipakai untuk suffix id entity.
const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// suffixLength: panjang bagian acak id, contoh "announcement-k3x9qz".
const suffixLength = 6

// GenerateEntityID membuat id publik entity dengan format
// "<prefix>-<6 karakter acak [a-z0-9]>", misal "blog-a81f0q".
// Id ini immutable, dipakai sebagai primary key lookup, dan BUKAN _id Mongo.
// Keunikan dijamin lewat unique index di tiap collection + retry saat insert.
func GenerateEntityID(prefix string) string {
	buf := make([]byte, suffixLength)
	// rand.Read dari crypto/rand tidak pernah gagal di platform yang didukung
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = idCharset[int(b)%len(idCharset)]
	}
	return prefix + "-" + string(buf)
}
