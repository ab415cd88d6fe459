package render

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

const (
	weightSemibold = 600
	weightBold     = 700
	weightBlack    = 900
)

const (
	white95 = "rgba(255,255,255,0.95)"
	ink     = "#1f2937"
)

func (p *painter) match(d *document.MatchRecord) {
	c, w, h := p.c, p.w, p.h

	c.SetFill(p.gradient(d.Color1, d.Color2))
	c.FillRect(0, 0, w, h)
	p.pattern(p.view.Pattern)
	p.matchContent(d)

	p.image("background", d.BgImage, func(img image.Image) {
		c.DrawImage(img, 0, 0, w, h)
		p.fill("rgba(0,0,0,0.5)")
		c.FillRect(0, 0, w, h)
		p.pattern(p.view.Pattern)
		p.matchContent(d)
	})
}

func (p *painter) matchContent(d *document.MatchRecord) {
	c, w, h := p.c, p.w, p.h
	size := float64(d.TextSize)

	p.fill(white95)
	c.FillRoundRect(w/2-200, 100, 400, 80, 40)

	p.fillHex(d.Color1)
	p.font(weightBold, 36)
	c.SetTextAlign(canvas.AlignCenter)
	p.text("MATCH À VENIR", w/2, 155)

	p.font(weightBold, size)
	p.fill("white")
	p.text(d.HomeTeam, w/2, h/2-100)

	p.font(weightBold, 60)
	p.fill("rgba(255,255,255,0.8)")
	p.text("VS", w/2, h/2)

	p.font(weightBold, size)
	p.fill("white")
	p.text(d.AwayTeam, w/2, h/2+100)

	p.fill(white95)
	c.FillRoundRect(120, h-300, w-240, 200, 30)

	p.fill(ink)
	p.font(weightBold, 40)
	p.text(d.Date, w/2, h-220)

	p.font(weightBold, 50)
	p.text(d.Time, w/2, h-160)

	p.font(weightSemibold, 32)
	p.fillHex(d.Color1)
	p.text(d.Stadium, w/2, h-110)
}

func (p *painter) score(d *document.ScoreRecord) {
	c, w, h := p.c, p.w, p.h
	size := float64(d.TextSize)

	p.fill("#0f172a")
	c.FillRect(0, 0, w, h)
	p.pattern(p.view.Pattern)

	c.SetFill(p.gradient(d.Color1, d.Color2))
	c.FillRoundRect(w/2-200, 100, 400, 80, 40)

	p.fill("white")
	p.font(weightBold, 36)
	c.SetTextAlign(canvas.AlignCenter)
	p.text("SCORE FINAL", w/2, 155)

	p.font(weightSemibold, 28)
	p.fill("rgba(255,255,255,0.6)")
	p.text(d.Competition, w/2, 220)

	p.fill("rgba(255,255,255,0.05)")
	c.FillRoundRect(100, h/2-250, w-200, 500, 40)

	p.image("homeLogo", d.HomeLogo, func(img image.Image) {
		c.DrawImage(img, w/2-290, h/2-200, 100, 100)
	})
	p.image("awayLogo", d.AwayLogo, func(img image.Image) {
		c.DrawImage(img, w/2+190, h/2-200, 100, 100)
	})

	p.fill("white")
	p.font(weightBold, size)
	p.text(d.HomeTeam, w/2-200, h/2-100)

	p.font(weightBold, 140)
	p.fillHex(d.Color1)
	p.text(strconv.Itoa(d.HomeScore), w/2-200, h/2+50)

	p.fill("rgba(255,255,255,0.3)")
	p.font(weightBold, 60)
	p.text("-", w/2, h/2+50)

	p.fill("white")
	p.font(weightBold, size)
	p.text(d.AwayTeam, w/2+200, h/2-100)

	p.font(weightBold, 140)
	p.fill("rgba(255,255,255,0.5)")
	p.text(strconv.Itoa(d.AwayScore), w/2+200, h/2+50)

	p.font(weightSemibold, 32)
	p.fill("rgba(255,255,255,0.5)")
	p.text(d.Date, w/2, h-100)
}

func (p *painter) player(d *document.PlayerRecord) {
	c, w, h := p.c, p.w, p.h

	c.SetFill(p.gradient(d.Color1, d.Color2))
	c.FillRect(0, 0, w, h)
	p.pattern(p.view.Pattern)

	p.image("playerPhoto", d.PlayerPhoto, func(img image.Image) {
		c.Save()
		c.SetGlobalAlpha(0.3)
		c.DrawImage(img, w-600, 0, 600, h)
		c.Restore()
	})

	p.fill(white95)
	c.FillRoundRect(w/2-250, 80, 500, 100, 50)

	p.fillHex(d.Color1)
	p.font(weightBold, 42)
	c.SetTextAlign(canvas.AlignCenter)
	p.text("JOUEUR DU MATCH", w/2, 145)

	p.fill("white")
	p.font(weightBold, float64(d.TextSize))
	p.text(d.PlayerName, w/2, h/2-50)

	p.fill(white95)
	c.FillRoundRect(w/2-100, h/2-20, 200, 200, 100)

	p.fillHex(d.Color1)
	p.font(weightBold, 120)
	p.text(d.Number, w/2, h/2+110)

	p.fill("white")
	p.font(weightSemibold, 40)
	p.text(d.Position, w/2, h/2+220)

	p.font(weightSemibold, 32)
	p.fill("rgba(255,255,255,0.9)")
	p.text(d.Stats, w/2, h-150)

	p.font(weightBold, 36)
	p.text(d.Team, w/2, h-80)
}

func (p *painter) ranking(d *document.RankingRecord) {
	c, w, h := p.c, p.w, p.h
	size := float64(d.TextSize)

	c.SetFill(p.gradient(d.Color1, d.Color2))
	c.FillRect(0, 0, w, h)
	p.pattern(p.view.Pattern)

	p.fill("white")
	p.font(weightBold, 80)
	c.SetTextAlign(canvas.AlignCenter)
	p.text(d.Title, w/2, 150)

	p.font(weightSemibold, 32)
	p.fill("rgba(255,255,255,0.8)")
	p.text(d.Competition, w/2, 210)

	p.fill(white95)
	c.FillRoundRect(80, 280, w-160, h-380, 30)

	p.fill(ink)
	p.font(weightSemibold, size)
	c.SetTextAlign(canvas.AlignLeft)
	for i, team := range d.Lines() {
		p.text(team, 140, 360+float64(i)*(size+20))
	}
}

const (
	panelY       = 380.0
	rowHeight    = 120.0
	rowSpacing   = 20.0
	bannerRepeat = 20
)

// upNext draws the fixture list. Its labels never take text effects.
func (p *painter) upNext(d *document.UpNextRecord) {
	c, w, h := p.c, p.w, p.h

	p.fillHex(d.ColorHeader)
	c.FillRect(0, 0, w, h)

	p.fill("rgba(0,0,0,0.2)")
	c.FillRect(0, 0, w, 50)
	p.fill("rgba(255,255,255,0.3)")
	p.font(weightBold, 16)
	c.SetTextAlign(canvas.AlignLeft)
	p.plain(strings.Repeat("NEXT FIXTURE ", bannerRepeat), 0, 32)

	p.fill("#000000")
	p.font(weightBlack, 120)
	p.plain("UP", 80, 200)
	p.plain("NEXT", 80, 310)

	p.fill("#FFFFFF")
	p.font(weightBlack, 100)
	p.plain("»", 400, 265)

	matches := d.Visible()
	panelHeight := math.Min(h-panelY-80, float64(d.NumMatches)*150+40)
	p.fillHex(d.ColorPanel)
	c.FillRoundRect(60, panelY, w-120, panelHeight, 20)

	startY := panelY + 40
	for i, m := range matches {
		y := startY + float64(i)*(rowHeight+rowSpacing)

		if m.HomeLogo != "" {
			p.image("homeLogo"+strconv.Itoa(i), m.HomeLogo, func(img image.Image) {
				c.DrawImage(img, 120, y, 80, 80)
			})
		} else {
			p.fillHex(d.ColorHeader)
			c.FillPolygon(shield(160, 200, 180, y))
		}

		if m.AwayLogo != "" {
			p.image("awayLogo"+strconv.Itoa(i), m.AwayLogo, func(img image.Image) {
				c.DrawImage(img, w-200, y, 80, 80)
			})
		} else {
			p.fill("#000000")
			c.FillPolygon(shield(w-200, w-160, w-180, y))
		}

		p.fillHex(d.ColorText)
		c.SetTextAlign(canvas.AlignCenter)
		p.font(weightBold, 32)
		p.plain(m.Date, w/2, y+25)
		p.font(weightBold, 36)
		p.plain(m.Time, w/2, y+60)
		p.font(weightSemibold, 20)
		p.fill("rgba(31,41,55,0.6)")
		p.plain(m.Stadium, w/2, y+85)

		if i < len(matches)-1 {
			c.SetStroke(canvas.MustParseColor("rgba(0,0,0,0.1)"), 1)
			c.StrokeLine(120, y+rowHeight, w-120, y+rowHeight)
		}
	}
}

// shield is the placeholder drawn where a club logo is missing.
func shield(left, right, tip, y float64) []canvas.Point {
	return []canvas.Point{
		{X: left, Y: y},
		{X: right, Y: y},
		{X: right, Y: y + 60},
		{X: tip, Y: y + 80},
		{X: left, Y: y + 60},
	}
}
