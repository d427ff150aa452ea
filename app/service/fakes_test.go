package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"reflect"
	"sort"
	"testing"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"
	"school-cms-backend/app/storage"
	"school-cms-backend/middleware"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeContentRepo menyimpan dokumen sebagai bytes BSON per collection,
// supaya perilaku marshal/unmarshal-nya sama dengan driver asli.
type fakeContentRepo struct {
	data map[string]map[string][]byte // coll -> id -> dokumen

	insertErr error
	updateErr error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{data: map[string]map[string][]byte{}}
}

func docID(doc interface{}) string {
	raw, _ := bson.Marshal(doc)
	var m bson.M
	_ = bson.Unmarshal(raw, &m)
	id, _ := m["id"].(string)
	return id
}

func (f *fakeContentRepo) Insert(_ context.Context, coll string, doc interface{}, regenID func()) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	id := docID(doc)
	if _, exists := f.data[coll][id]; exists && regenID != nil {
		regenID()
		id = docID(doc)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	if f.data[coll] == nil {
		f.data[coll] = map[string][]byte{}
	}
	f.data[coll][id] = raw
	return nil
}

func (f *fakeContentRepo) FindByID(_ context.Context, coll string, id string, out interface{}) error {
	raw, ok := f.data[coll][id]
	if !ok {
		return repository.ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (f *fakeContentRepo) FindAll(_ context.Context, coll string, _ []string, out interface{}) error {
	slice := reflect.ValueOf(out).Elem()
	ids := make([]string, 0, len(f.data[coll]))
	for id := range f.data[coll] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		elem := reflect.New(slice.Type().Elem())
		if err := bson.Unmarshal(f.data[coll][id], elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

func (f *fakeContentRepo) UpdateByID(_ context.Context, coll string, id string, fields bson.M) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	raw, ok := f.data[coll][id]
	if !ok {
		return 0, nil
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return 0, err
	}
	for k, v := range fields {
		m[k] = v
	}
	updated, err := bson.Marshal(m)
	if err != nil {
		return 0, err
	}
	f.data[coll][id] = updated
	return 1, nil
}

func (f *fakeContentRepo) DeleteByID(_ context.Context, coll string, id string) (int64, error) {
	if _, ok := f.data[coll][id]; !ok {
		return 0, nil
	}
	delete(f.data[coll], id)
	return 1, nil
}

func (f *fakeContentRepo) Count(_ context.Context, coll string) (int64, error) {
	return int64(len(f.data[coll])), nil
}

// fakeAdminRepo: tabel admin in-memory, keyed by adminID.
type fakeAdminRepo struct {
	admins map[string]model.Admin
}

func newFakeAdminRepo(adminIDs ...string) *fakeAdminRepo {
	f := &fakeAdminRepo{admins: map[string]model.Admin{}}
	for _, id := range adminIDs {
		f.admins[id] = model.Admin{AdminID: id, Name: "Admin " + id, Username: id}
	}
	return f
}

func (f *fakeAdminRepo) Create(admin *model.Admin) error {
	f.admins[admin.AdminID] = *admin
	return nil
}

func (f *fakeAdminRepo) FindByUsername(username string) (*model.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			copied := a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepo) FindByAdminID(adminID string) (*model.Admin, error) {
	a, ok := f.admins[adminID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := a
	return &copied, nil
}

func (f *fakeAdminRepo) FindAll() ([]model.Admin, error) {
	out := make([]model.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdminRepo) ExistsByAdminID(adminID string) (bool, error) {
	_, ok := f.admins[adminID]
	return ok, nil
}

func (f *fakeAdminRepo) UpdatePassword(adminID string, passwordHash string) error {
	a, ok := f.admins[adminID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.PasswordHash = passwordHash
	f.admins[adminID] = a
	return nil
}

func (f *fakeAdminRepo) DeleteByAdminID(adminID string) (int64, error) {
	if _, ok := f.admins[adminID]; !ok {
		return 0, nil
	}
	delete(f.admins, adminID)
	return 1, nil
}

func (f *fakeAdminRepo) Count() (int64, error) {
	return int64(len(f.admins)), nil
}

// fakeFileStorage mencatat upload dan delete, tanpa jaringan.
type fakeFileStorage struct {
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeFileStorage) Upload(_ context.Context, filename string, r io.Reader) (*storage.StoredFile, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	f.uploads++
	fileID := fmt.Sprintf("obj-%d-%s", f.uploads, filename)
	return &storage.StoredFile{
		FileID:        fileID,
		ShareableLink: "https://cdn.example.test/" + fileID,
	}, nil
}

func (f *fakeFileStorage) Delete(_ context.Context, fileID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, fileID)
	return nil
}

// jsonRequest membuat gin test context dengan body JSON dan (opsional)
// identitas admin seolah sudah lewat AuthMiddleware.
func jsonRequest(t *testing.T, method string, body interface{}, adminID string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Params = params
	if adminID != "" {
		ctx.Set(middleware.CtxAdminID, adminID)
	}
	return ctx, w
}

// formRequest membuat gin test context dengan body multipart (form field +
// opsional satu file).
func formRequest(t *testing.T, method string, fields map[string]string, fileKey, fileName string, fileContent []byte, adminID string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileKey != "" {
		part, err := mw.CreateFormFile(fileKey, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ctx.Request = req
	ctx.Params = params
	if adminID != "" {
		ctx.Set(middleware.CtxAdminID, adminID)
	}
	return ctx, w
}

// decodeEnvelope membaca body respon ke dalam envelope standar.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, w.Body.String())
	}
	if resp.Status != w.Code {
		t.Fatalf("status body (%d) != status line (%d)", resp.Status, w.Code)
	}
	return resp
}
