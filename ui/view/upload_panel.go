package view

import (
	"fmt"
	"image"

	"github.com/dustin/go-humanize"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	previewW = 200
	previewH = 200

	promptText = "Click to browse for an image (max %s)"
)

// uploadPanel shows either the browse prompt or the preview of the chosen file.
type uploadPanel struct {
	prompt    *ButtonWidget
	hint      *LabelWidget
	preview   *LabelWidget
	info      *LabelWidget
	remove    *ButtonWidget
	photo     *Img
	limitText string
}

func newUploadPanel(parent *FrameWidget, maxBytes int64, onBrowse, onRemove func()) *uploadPanel {
	p := &uploadPanel{limitText: humanize.IBytes(uint64(maxBytes))}
	p.prompt = Button(Txt("Upload Image"), Command(onBrowse))
	Grid(p.prompt, In(parent), Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	p.hint = Label(Txt(fmt.Sprintf(promptText, p.limitText)), Anchor("w"))
	Grid(p.hint, In(parent), Row(0), Column(1), Sticky("w"), Padx("0.4m"))

	p.photo = NewPhoto(Data(images.EncodePNG(images.Solid(previewW, previewH, image.Transparent.C))))
	p.preview = Label(Image(p.photo), Borderwidth(1), Relief("sunken"))
	Grid(p.preview, In(parent), Row(1), Column(0), Columnspan(2), Padx("0.4m"), Pady("0.4m"))
	p.info = Label(Txt("No image selected"), Anchor("w"))
	Grid(p.info, In(parent), Row(2), Column(0), Sticky("w"), Padx("0.4m"))
	p.remove = Button(Txt("Remove"), Command(onRemove), State("disabled"))
	Grid(p.remove, In(parent), Row(2), Column(1), Sticky("e"), Padx("0.4m"), Pady("0.3m"))
	return p
}

// ShowPreview displays u and enables removal.
func (p *uploadPanel) ShowPreview(u *intake.Upload) {
	if p == nil || u == nil {
		return
	}
	p.setPhoto(images.ScaleToFit(u.Preview, previewW, previewH))
	p.info.Configure(Txt(fmt.Sprintf("%s  %dx%d  %s", u.Name, u.Width, u.Height, humanize.IBytes(uint64(u.Size)))))
	p.hint.Configure(Txt("Uploaded image takes precedence over the drawing"))
	p.remove.Configure(State("normal"))
}

// ShowPrompt resets the panel to its idle state.
func (p *uploadPanel) ShowPrompt() {
	if p == nil {
		return
	}
	p.setPhoto(images.Solid(previewW, previewH, image.Transparent.C))
	p.info.Configure(Txt("No image selected"))
	p.hint.Configure(Txt(fmt.Sprintf(promptText, p.limitText)))
	p.remove.Configure(State("disabled"))
}

func (p *uploadPanel) setPhoto(img image.Image) {
	if img == nil || p.preview == nil {
		return
	}
	if p.photo != nil {
		p.photo.Delete()
	}
	p.photo = NewPhoto(Data(images.EncodePNG(img)))
	p.preview.Configure(Image(p.photo))
}
