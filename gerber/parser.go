package gerber

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwtcode/graphtecAdapter/models"
	"github.com/sirupsen/logrus"
)

// Режимы интерполяции (G01/G02/G03).
const (
	interpLinear = iota
	interpArcCW
	interpArcCCW
)

// aperture описывает определение апертуры из параметра %AD.
type aperture struct {
	shape  byte // 'C', 'R', 'O', 'P'; 0 — неподдерживаемая (макро и т.п.)
	name   string
	params []float64
}

// parser хранит модальное состояние разбора RS-274X.
type parser struct {
	layer models.Layer

	xDec, yDec    int
	apertures     map[int]aperture
	currentDCode  int
	interp        int
	multiQuadrant bool

	pos models.Point

	inRegion bool
	region   []models.Primitive

	logger *logrus.Logger
}

// LoadLayer читает и разбирает Gerber-файл (RS-274X).
func LoadLayer(path string) (*models.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gerber file: %w", err)
	}
	return ParseLayer(data)
}

// ParseLayer разбирает содержимое Gerber-файла. Поддерживается
// подмножество RS-274X, которым пользуются слои печатных плат:
// FS/MO, апертуры C/R/O/P, G01/G02/G03, G36/G37, D01/D02/D03.
// Нераспознанные параметры пропускаются с предупреждением.
func ParseLayer(src []byte) (*models.Layer, error) {
	p := &parser{
		xDec:      4,
		yDec:      4,
		apertures: make(map[int]aperture),
		interp:    interpLinear,
		logger:    logrus.StandardLogger(),
	}
	p.layer.Units = "inch"

	text := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, string(src))

	for i := 0; i < len(text); {
		if text[i] == '%' {
			end := strings.IndexByte(text[i+1:], '%')
			if end < 0 {
				return nil, fmt.Errorf("unterminated extended code at offset %d", i)
			}
			for _, block := range strings.Split(text[i+1:i+1+end], "*") {
				if block != "" {
					p.extended(block)
				}
			}
			i += end + 2
			continue
		}
		end := strings.IndexByte(text[i:], '*')
		if end < 0 {
			break
		}
		if block := text[i : i+end]; block != "" {
			if err := p.command(block); err != nil {
				return nil, err
			}
		}
		i += end + 1
	}

	if p.inRegion {
		// Незакрытый G36: сохраняем накопленное, чтобы не терять геометрию.
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: models.KindRegion, Children: p.region})
	}
	return &p.layer, nil
}

// extended обрабатывает один блок расширенного кода (внутри %...%).
func (p *parser) extended(block string) {
	switch {
	case strings.HasPrefix(block, "FS"):
		p.formatSpec(block)
	case strings.HasPrefix(block, "MOIN"):
		p.layer.Units = "inch"
	case strings.HasPrefix(block, "MOMM"):
		p.layer.Units = "mm"
	case strings.HasPrefix(block, "ADD"):
		p.defineAperture(block[3:])
	case strings.HasPrefix(block, "LP"), strings.HasPrefix(block, "IP"), strings.HasPrefix(block, "LN"):
		// Полярность и имена слоев на геометрию контуров не влияют.
	default:
		p.logger.WithField("code", block).Debug("Skipping unsupported extended code")
	}
}

// formatSpec разбирает параметр FS (количество знаков после запятой).
func (p *parser) formatSpec(block string) {
	if xi := strings.IndexByte(block, 'X'); xi >= 0 && xi+2 < len(block) {
		if d, err := strconv.Atoi(block[xi+2 : xi+3]); err == nil {
			p.xDec = d
		}
	}
	if yi := strings.IndexByte(block, 'Y'); yi >= 0 && yi+2 < len(block) {
		if d, err := strconv.Atoi(block[yi+2 : yi+3]); err == nil {
			p.yDec = d
		}
	}
}

// defineAperture разбирает тело параметра %ADD: код, тип и размеры.
func (p *parser) defineAperture(body string) {
	digits := 0
	for digits < len(body) && body[digits] >= '0' && body[digits] <= '9' {
		digits++
	}
	code, err := strconv.Atoi(body[:digits])
	if err != nil || digits == len(body) {
		p.logger.WithField("body", body).Warn("Malformed aperture definition")
		return
	}

	rest := body[digits:]
	name, paramStr, _ := strings.Cut(rest, ",")
	var params []float64
	if paramStr != "" {
		for _, ps := range strings.Split(paramStr, "X") {
			v, err := strconv.ParseFloat(ps, 64)
			if err != nil {
				p.logger.WithField("body", body).Warn("Malformed aperture parameter")
				return
			}
			params = append(params, v)
		}
	}

	ap := aperture{name: name, params: params}
	if len(name) == 1 && strings.ContainsAny(name, "CROP") {
		ap.shape = name[0]
	} else {
		// Макро-апертуры не поддерживаются; вспышка даст диагностику.
		p.logger.WithField("aperture", name).Warn("Unsupported aperture type")
	}
	p.apertures[code] = ap
}

// command обрабатывает один функциональный блок (до '*').
func (p *parser) command(block string) error {
	if strings.HasPrefix(block, "G04") {
		return nil // комментарий
	}
	if strings.HasPrefix(block, "M02") || strings.HasPrefix(block, "M00") {
		return nil
	}

	var x, y, ci, cj float64
	var hasX, hasY, hasI, hasJ bool
	dcode := -1

	for i := 0; i < len(block); {
		letter := block[i]
		j := i + 1
		for j < len(block) && (block[j] == '+' || block[j] == '-' || (block[j] >= '0' && block[j] <= '9')) {
			j++
		}
		num := block[i+1 : j]
		i = j

		switch letter {
		case 'G':
			if err := p.gcode(num); err != nil {
				return err
			}
		case 'X':
			x, hasX = p.coord(num, p.xDec), true
		case 'Y':
			y, hasY = p.coord(num, p.yDec), true
		case 'I':
			ci, hasI = p.coord(num, p.xDec), true
		case 'J':
			cj, hasJ = p.coord(num, p.yDec), true
		case 'D':
			d, err := strconv.Atoi(num)
			if err != nil {
				return fmt.Errorf("malformed D code in block %q", block)
			}
			dcode = d
		case 'M':
			// Прочие M-коды игнорируются.
		default:
			p.logger.WithField("block", block).Debug("Skipping unsupported word")
			return nil
		}
	}

	target := p.pos
	if hasX {
		target.X = x
	}
	if hasY {
		target.Y = y
	}

	switch {
	case dcode < 0:
		// Блок только с координатами: модальная операция — перемещение.
		if hasX || hasY {
			p.pos = target
		}
	case dcode == 1:
		p.draw(target, ci, cj, hasI || hasJ)
		p.pos = target
	case dcode == 2:
		p.pos = target
	case dcode == 3:
		p.flash(target)
		p.pos = target
	case dcode >= 10:
		p.currentDCode = dcode
	}
	return nil
}

func (p *parser) gcode(num string) error {
	g, err := strconv.Atoi(num)
	if err != nil {
		return fmt.Errorf("malformed G code %q", num)
	}
	switch g {
	case 1:
		p.interp = interpLinear
	case 2:
		p.interp = interpArcCW
	case 3:
		p.interp = interpArcCCW
	case 36:
		p.inRegion = true
		p.region = nil
	case 37:
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: models.KindRegion, Children: p.region})
		p.inRegion = false
		p.region = nil
	case 74:
		p.multiQuadrant = false
	case 75:
		p.multiQuadrant = true
	case 70:
		p.layer.Units = "inch"
	case 71:
		p.layer.Units = "mm"
	case 90:
		// Абсолютные координаты — единственный поддерживаемый режим.
	default:
		p.logger.WithField("gcode", g).Debug("Skipping unsupported G code")
	}
	return nil
}

// coord переводит строку координаты в число по спецификации формата FS.
func (p *parser) coord(num string, dec int) float64 {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		p.logger.WithField("value", num).Warn("Malformed coordinate")
		return 0
	}
	return v / math.Pow10(dec)
}

// draw создает примитив рисующего перемещения D01 в текущем режиме интерполяции.
func (p *parser) draw(target models.Point, ci, cj float64, hasOffset bool) {
	var prim models.Primitive
	if p.interp == interpLinear || !hasOffset {
		prim = models.Primitive{Kind: models.KindLine, Start: p.pos, End: target}
	} else {
		center := models.Point{X: p.pos.X + ci, Y: p.pos.Y + cj}
		cw := p.interp == interpArcCW
		prim = models.Primitive{
			Kind:      models.KindArc,
			Start:     p.pos,
			End:       target,
			Center:    center,
			Radius:    math.Hypot(p.pos.X-center.X, p.pos.Y-center.Y),
			Clockwise: &cw,
		}
	}
	if p.inRegion {
		p.region = append(p.region, prim)
		return
	}
	p.layer.Primitives = append(p.layer.Primitives, prim)
}

// flash создает примитив вспышки D03 по текущей апертуре.
func (p *parser) flash(at models.Point) {
	ap, ok := p.apertures[p.currentDCode]
	if !ok {
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: models.KindUnknown, Center: at})
		return
	}
	switch ap.shape {
	case 'C':
		var r float64
		if len(ap.params) > 0 {
			r = ap.params[0] / 2.0
		}
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: models.KindCircle, Center: at, Radius: r})
	case 'R', 'O':
		kind := models.KindRectangle
		if ap.shape == 'O' {
			kind = models.KindObround
		}
		var w, h float64
		if len(ap.params) > 0 {
			w = ap.params[0]
			h = w
		}
		if len(ap.params) > 1 {
			h = ap.params[1]
		}
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: kind, Center: at, Width: w, Height: h})
	case 'P':
		p.layer.Primitives = append(p.layer.Primitives, polygonFlash(at, ap))
	default:
		p.layer.Primitives = append(p.layer.Primitives, models.Primitive{Kind: models.KindUnknown, Center: at})
	}
}

// polygonFlash строит вершины вспышки полигональной апертуры
// (внешний диаметр, число сторон, необязательный поворот в градусах).
func polygonFlash(at models.Point, ap aperture) models.Primitive {
	radius := 0.0
	sides := 3
	rotation := 0.0
	if len(ap.params) > 0 {
		radius = ap.params[0] / 2.0
	}
	if len(ap.params) > 1 {
		sides = int(ap.params[1])
	}
	if len(ap.params) > 2 {
		rotation = ap.params[2] * math.Pi / 180.0
	}
	if sides < 3 {
		sides = 3
	}

	vertices := make([]any, 0, sides)
	for i := 0; i < sides; i++ {
		theta := rotation + 2*math.Pi*float64(i)/float64(sides)
		vertices = append(vertices, models.Point{
			X: at.X + radius*math.Cos(theta),
			Y: at.Y + radius*math.Sin(theta),
		})
	}
	return models.Primitive{Kind: models.KindPolygon, Vertices: vertices}
}
