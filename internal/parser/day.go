package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// 门户单日片段使用的选择器
const (
	selDateMonth  = ".indv-sch-cell-date-month" // 日期覆盖：完整月份名
	selDateDOM    = ".indv-sch-cell-date-dom"   // 日期覆盖：月内日
	selOffMarker  = ".indv-sch-sch-off"         // 显式休息日标记
	selShiftToken = ".indv-sch-sch-sten"        // 班次时段容器，形如 "9a/5:30p"
)

// DayFragment 单日标记片段的提取结果
type DayFragment struct {
	Date        time.Time // 生效日期：显式覆盖或默认锚定日
	Off         bool      // 显式标记为休息日
	Tokens      []string  // 班次时段文本，可能多段（拆分班）
	OverrideErr error     // 日期覆盖存在但月份名无法识别；Date 已回退默认锚定日
}

// ExtractDay 从单日标记中提取生效日期、休息标记与班次时段
//
// 生效日期规则：
//   - 片段带完整月份名 + 月内日 → 覆盖月与日，年份沿用 defaultDate
//   - 仅带月内日 → 覆盖默认月份中的日
//   - 月份名无法识别 → 放弃覆盖，回退 defaultDate，并在 OverrideErr 中携带原因
//
// 空片段（无时段、无休息标记）表示该日无数据，与显式休息日不同
func ExtractDay(markup string, defaultDate time.Time) (DayFragment, error) {
	frag := DayFragment{Date: defaultDate}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return frag, err
	}

	frag.Date = resolveEffectiveDate(doc, defaultDate, &frag.OverrideErr)

	if doc.Find(selOffMarker).Length() > 0 {
		frag.Off = true
		return frag, nil
	}

	doc.Find(selShiftToken).Each(func(_ int, sel *goquery.Selection) {
		token := strings.TrimSpace(sel.Text())
		if token != "" {
			frag.Tokens = append(frag.Tokens, token)
		}
	})
	return frag, nil
}

// resolveEffectiveDate 应用日期覆盖块，无覆盖或覆盖无效时返回默认日期
func resolveEffectiveDate(doc *goquery.Document, defaultDate time.Time, overrideErr *error) time.Time {
	domText := strings.TrimSpace(doc.Find(selDateDOM).First().Text())
	if domText == "" {
		return defaultDate
	}
	dom, err := strconv.Atoi(domText)
	if err != nil {
		*overrideErr = err
		return defaultDate
	}

	month := defaultDate.Month()
	if monthText := strings.TrimSpace(doc.Find(selDateMonth).First().Text()); monthText != "" {
		m, err := ParseMonthName(monthText)
		if err != nil {
			*overrideErr = err
			return defaultDate
		}
		month = m
	}

	return time.Date(defaultDate.Year(), month, dom, 0, 0, 0, 0, defaultDate.Location())
}
