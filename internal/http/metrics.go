package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	berekeningenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "offerte_berekeningen_total",
		Help: "Aantal uitgevoerde offerteberekeningen.",
	})
	pdfExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "offerte_pdf_exports_total",
		Help: "Aantal gegenereerde offerte-PDF's.",
	})
	urenExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uren_exports_total",
		Help: "Aantal gegenereerde urenrapporten.",
	})
)
