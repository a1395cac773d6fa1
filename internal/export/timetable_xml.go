package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/railway_station/internal/models"
)

// WriteTimetableXML 将车次列表写成 XML 时刻表文档
//
//	<timetable generatedAt="..." count="N">
//	  <train id="1" number="001A">
//	    <route from="Москва" to="Казань"/>
//	    <departure station="..." date="2025-06-01" time="08:00"/>
//	    <arrival station="..." date="2025-06-01" time="20:00"/>
//	  </train>
//	</timetable>
func WriteTimetableXML(w io.Writer, trains []models.Train, generatedAt time.Time) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("timetable")
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(trains)))

	for _, t := range trains {
		el := root.CreateElement("train")
		el.CreateAttr("id", strconv.FormatInt(t.ID, 10))
		el.CreateAttr("number", t.Number)

		route := el.CreateElement("route")
		route.CreateAttr("from", t.FromCity)
		route.CreateAttr("to", t.ToCity)

		dep := el.CreateElement("departure")
		dep.CreateAttr("station", t.DepartureStation)
		dep.CreateAttr("date", t.DepartureDate.String())
		dep.CreateAttr("time", t.DepartureTime.String())

		arr := el.CreateElement("arrival")
		arr.CreateAttr("station", t.ArrivalStation)
		arr.CreateAttr("date", t.ArrivalDate.String())
		arr.CreateAttr("time", t.ArrivalTime.String())
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write timetable xml: %w", err)
	}
	return nil
}
