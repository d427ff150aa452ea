package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound dikembalikan saat lookup by id tidak menemukan dokumen.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateID dikembalikan jika insert tetap bentrok id setelah retry habis.
var ErrDuplicateID = errors.New("duplicate entity id")

// insertRetries: berapa kali insert boleh diulang (dengan id baru) kalau
// kebentur unique index "id". Suffix acak 6 karakter praktis tidak akan
// bentrok dua kali berturut-turut, retry ini cuma penutup celah race.
const insertRetries = 3

// hiddenProjection menyembunyikan _id internal Mongo di SEMUA pembacaan.
// Id publik dokumen adalah field "id".
var hiddenProjection = bson.M{"_id": 0}

// ContentRepository adalah helper persistence generik yang dipakai seluruh
// service konten. Setiap method menerima nama collection secara eksplisit,
// jadi TIDAK ada state tersembunyi selain handle database-nya sendiri.
//
// Kontrak error satu pintu: semua method mengembalikan error Go biasa,
// lookup kosong = ErrNotFound. Tidak ada yang melempar panic, tidak ada yang
// mengembalikan error sebagai "data".
type ContentRepository interface {
	// Insert menyimpan satu dokumen baru. regenID (opsional) dipanggil untuk
	// mengganti id dokumen jika insert bentrok dengan unique index "id".
	Insert(ctx context.Context, coll string, doc interface{}, regenID func()) error

	// FindByID mengambil 1 dokumen berdasarkan field "id", decode ke out.
	// _id internal tidak ikut.
	FindByID(ctx context.Context, coll string, id string, out interface{}) error

	// FindAll scan seluruh collection, decode ke out (pointer ke slice).
	// Field di extraHidden ikut disembunyikan (misal createdBy/fileId
	// untuk pembacaan publik).
	FindAll(ctx context.Context, coll string, extraHidden []string, out interface{}) error

	// UpdateByID merge-update ($set) dokumen ber-"id" tersebut.
	// Mengembalikan matched count (0 = tidak ada dokumen ke-match).
	UpdateByID(ctx context.Context, coll string, id string, fields bson.M) (int64, error)

	// DeleteByID menghapus dokumen ber-"id" tersebut, mengembalikan
	// jumlah dokumen terhapus.
	DeleteByID(ctx context.Context, coll string, id string) (int64, error)

	// Count menghitung seluruh dokumen di collection (dipakai dashboard).
	Count(ctx context.Context, coll string) (int64, error)
}

type contentRepository struct {
	mongo *mongo.Database
}

// NewContentRepository membuat repository konten di atas satu database Mongo.
// Handle dibuat sekali di startup dan di-inject ke semua service
// (tidak ada connect/disconnect per-request).
func NewContentRepository(mongoDB *mongo.Database) ContentRepository {
	return &contentRepository{mongo: mongoDB}
}

func (r *contentRepository) Insert(ctx context.Context, coll string, doc interface{}, regenID func()) error {
	c := r.mongo.Collection(coll)

	_, err := c.InsertOne(ctx, doc)
	if err == nil {
		return nil
	}

	// Bentrok id: ulang dengan id baru (kalau caller menyediakan cara regen).
	for attempt := 0; attempt < insertRetries && mongo.IsDuplicateKeyError(err) && regenID != nil; attempt++ {
		regenID()
		_, err = c.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return fmt.Errorf("mongo insert error: %w", err)
}

func (r *contentRepository) FindByID(ctx context.Context, coll string, id string, out interface{}) error {
	opts := options.FindOne().SetProjection(hiddenProjection)
	err := r.mongo.Collection(coll).
		FindOne(ctx, bson.M{"id": id}, opts).
		Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (r *contentRepository) FindAll(ctx context.Context, coll string, extraHidden []string, out interface{}) error {
	projection := bson.M{"_id": 0}
	for _, f := range extraHidden {
		projection[f] = 0
	}

	opts := options.Find().
		SetProjection(projection).
		SetSort(bson.M{"createdAt": -1}) // terbaru dulu

	cur, err := r.mongo.Collection(coll).Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (r *contentRepository) UpdateByID(ctx context.Context, coll string, id string, fields bson.M) (int64, error) {
	res, err := r.mongo.Collection(coll).UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo update error: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *contentRepository) DeleteByID(ctx context.Context, coll string, id string) (int64, error) {
	res, err := r.mongo.Collection(coll).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("mongo delete error: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *contentRepository) Count(ctx context.Context, coll string) (int64, error) {
	return r.mongo.Collection(coll).CountDocuments(ctx, bson.M{})
}
