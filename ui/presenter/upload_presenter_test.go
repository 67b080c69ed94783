package presenter

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/ui/model"
)

type mockUploadView struct {
	previews, prompts int
	last              *intake.Upload
}

func (v *mockUploadView) ShowPreview(u *intake.Upload) { v.previews++; v.last = u }
func (v *mockUploadView) ShowPrompt()                  { v.prompts++ }

func pngFile(t *testing.T, name string) intake.File {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return intake.File{Name: name, MIMEType: "image/png", Size: int64(buf.Len()), Data: buf.Bytes()}
}

// deferredSpawn collects work so tests control completion order.
type deferredSpawn struct{ jobs []func() }

func (d *deferredSpawn) spawn(f func()) { d.jobs = append(d.jobs, f) }

func newUploadFixture() (*UploadPresenter, *model.CaptureContext, *Queue, *mockUploadView, *mockNotifier) {
	ctx := model.NewCaptureContext(nil, predict.DefaultModel)
	q := &Queue{}
	v := &mockUploadView{}
	n := &mockNotifier{}
	p := NewUploadPresenter(ctx, intake.NewValidator(0), q, v, n, nil)
	p.spawn = func(f func()) { f() }
	return p, ctx, q, v, n
}

func TestUploadPresenter_CommitsOnUIThread(t *testing.T) {
	p, ctx, q, v, n := newUploadFixture()
	p.Choose(pngFile(t, "a.png"))
	if ctx.Upload.Present() {
		t.Fatalf("slot written before the UI thread drained the queue")
	}
	q.Drain()
	if !ctx.Upload.Present() || v.previews != 1 || v.last.Name != "a.png" {
		t.Fatalf("upload not committed: present=%v previews=%d", ctx.Upload.Present(), v.previews)
	}
	if len(n.messages) != 0 {
		t.Fatalf("unexpected notification %v", n.messages)
	}
}

func TestUploadPresenter_RejectsNonImage(t *testing.T) {
	p, ctx, q, v, n := newUploadFixture()
	p.Choose(intake.File{Name: "notes.txt", MIMEType: "text/plain", Size: 5, Data: []byte("hello")})
	q.Drain()
	if ctx.Upload.Present() || v.previews != 0 {
		t.Fatalf("rejected file reached the slot")
	}
	if len(n.messages) != 1 || n.messages[0] != "Please select an image file." {
		t.Fatalf("unexpected notifications %v", n.messages)
	}
}

func TestUploadPresenter_RejectsOversize(t *testing.T) {
	p, ctx, q, _, n := newUploadFixture()
	f := pngFile(t, "big.png")
	f.Size = intake.DefaultMaxBytes + 1
	p.Choose(f)
	q.Drain()
	if ctx.Upload.Present() {
		t.Fatalf("oversize file reached the slot")
	}
	if len(n.messages) != 1 || n.messages[0] != "File size must be less than 10 MiB." {
		t.Fatalf("unexpected notifications %v", n.messages)
	}
}

func TestUploadPresenter_RejectionKeepsPreviousUpload(t *testing.T) {
	p, ctx, q, _, _ := newUploadFixture()
	p.Choose(pngFile(t, "keep.png"))
	q.Drain()
	p.Choose(intake.File{Name: "x.txt", MIMEType: "text/plain"})
	q.Drain()
	if cur := ctx.Upload.Current(); cur == nil || cur.Name != "keep.png" {
		t.Fatalf("failed intake must leave the slot unchanged, got %+v", cur)
	}
}

func TestUploadPresenter_StaleDecodeDiscarded(t *testing.T) {
	p, ctx, q, v, _ := newUploadFixture()
	d := &deferredSpawn{}
	p.spawn = d.spawn

	p.Choose(pngFile(t, "old.png"))
	p.Choose(pngFile(t, "new.png"))
	// newer decode finishes first, older one last
	d.jobs[1]()
	d.jobs[0]()
	q.Drain()
	if cur := ctx.Upload.Current(); cur == nil || cur.Name != "new.png" {
		t.Fatalf("older decode overwrote the newer selection: %+v", cur)
	}
	if v.previews != 1 {
		t.Fatalf("expected one preview, got %d", v.previews)
	}
}

func TestUploadPresenter_RemoveWhileDecoding(t *testing.T) {
	p, ctx, q, v, _ := newUploadFixture()
	d := &deferredSpawn{}
	p.spawn = d.spawn

	p.Choose(pngFile(t, "late.png"))
	p.Remove()
	d.jobs[0]()
	q.Drain()
	if ctx.Upload.Present() {
		t.Fatalf("decode finishing after removal must be dropped")
	}
	if v.prompts != 1 {
		t.Fatalf("remove should show the prompt, got %d", v.prompts)
	}
}

func TestUploadPresenter_RemoveClearsSlot(t *testing.T) {
	p, ctx, q, v, _ := newUploadFixture()
	p.Choose(pngFile(t, "a.png"))
	q.Drain()
	p.Remove()
	if ctx.Upload.Present() || v.prompts != 1 {
		t.Fatalf("remove: present=%v prompts=%d", ctx.Upload.Present(), v.prompts)
	}
}

func TestUploadPresenter_ChoosePath(t *testing.T) {
	p, ctx, q, _, n := newUploadFixture()
	f := pngFile(t, "disk.png")
	path := filepath.Join(t.TempDir(), "disk.png")
	if err := os.WriteFile(path, f.Data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	p.ChoosePath(path)
	q.Drain()
	if cur := ctx.Upload.Current(); cur == nil || cur.Name != "disk.png" {
		t.Fatalf("path upload missing: %+v", cur)
	}

	p.ChoosePath(filepath.Join(t.TempDir(), "missing.png"))
	q.Drain()
	if len(n.messages) != 1 {
		t.Fatalf("missing file should notify once, got %v", n.messages)
	}
}

type blockingDecoder struct{ ctxSeen context.Context }

func (b *blockingDecoder) Decode(ctx context.Context, f intake.File) (*intake.Upload, error) {
	b.ctxSeen = ctx
	return &intake.Upload{Name: f.Name, DataURI: "data:image/png;base64,AA"}, nil
}

func TestUploadPresenter_CustomDecoder(t *testing.T) {
	ctx := model.NewCaptureContext(nil, predict.DefaultModel)
	dec := &blockingDecoder{}
	p := NewUploadPresenter(ctx, dec, nil, nil, nil, nil)
	p.spawn = func(f func()) { f() }
	p.Choose(intake.File{Name: "x.png"})
	if dec.ctxSeen == nil || ctx.Upload.DataURI() != "data:image/png;base64,AA" {
		t.Fatalf("nil dispatcher should commit inline")
	}
}
