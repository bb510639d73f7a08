package corpus

import (
	"context"

	"garage/internal/domain"
)

// SeedSource serves the built-in service guide, useful for first runs and
// demos when no corpus has been ingested yet.
type SeedSource struct{}

func (SeedSource) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return SeedDocuments(), nil
}

// SeedDocuments returns the built-in automotive service knowledge base.
func SeedDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:      "oil-change-1",
			Content: "Oil change service is recommended every 5,000-7,500 miles or every 6 months for most vehicles. Regular oil changes prevent engine wear and maintain optimal performance. Our oil change service costs $49-89 and includes a 23-point inspection, oil filter replacement, and fluid top-off.",
			Metadata: map[string]any{
				"title":    "Oil Change Service",
				"category": "maintenance",
				"tags":     []string{"oil", "maintenance", "engine", "service"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "brake-service-1",
			Content: "Brake service is critical for vehicle safety. Warning signs include squeaking, grinding noises, vibration when braking, or longer stopping distances. Brake pads typically need replacement every 30,000-70,000 miles. Our brake service costs $199-450 and includes inspection, pad replacement, rotor resurfacing if needed, and brake fluid check.",
			Metadata: map[string]any{
				"title":    "Brake Service",
				"category": "maintenance",
				"tags":     []string{"brakes", "safety", "pads", "service"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "tire-service-1",
			Content: "Tire maintenance includes rotation, balancing, and pressure checks. Tire rotation should be performed every 6,000-8,000 miles to ensure even wear. Proper tire pressure is typically 30-35 PSI for most vehicles - check your door jamb sticker for exact specifications. Our tire rotation service costs $25-50.",
			Metadata: map[string]any{
				"title":    "Tire Service",
				"category": "maintenance",
				"tags":     []string{"tires", "rotation", "pressure", "service"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "battery-service-1",
			Content: "Car batteries typically last 3-5 years. Signs of a failing battery include slow engine cranking, dimming headlights, electrical issues, or the battery warning light. We offer free battery testing and replacement services. Battery replacement costs vary by vehicle but typically range from $100-200 including installation.",
			Metadata: map[string]any{
				"title":    "Battery Service",
				"category": "maintenance",
				"tags":     []string{"battery", "electrical", "replacement", "service"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "diagnostic-scan-1",
			Content: "Diagnostic scans use advanced computer systems to read your vehicle's onboard diagnostics. Our AI-powered diagnostic scan costs $89 and can detect engine problems, transmission issues, sensor failures, and emission system problems. The scan provides detailed trouble codes and recommended repairs.",
			Metadata: map[string]any{
				"title":    "Diagnostic Scan",
				"category": "diagnostics",
				"tags":     []string{"diagnostics", "scan", "engine", "computer"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "check-engine-light-1",
			Content: "The check engine light indicates a problem detected by your vehicle's onboard computer. Common causes include loose gas cap, faulty oxygen sensor, catalytic converter issues, spark plug problems, or mass airflow sensor failure. A diagnostic scan is needed to identify the specific issue. Don't ignore it - some problems can cause serious damage if left unaddressed.",
			Metadata: map[string]any{
				"title":    "Check Engine Light",
				"category": "diagnostics",
				"tags":     []string{"check engine", "warning", "diagnostics", "sensor"},
				"source":   "troubleshooting_guide",
			},
		},
		{
			ID:      "maintenance-schedule-1",
			Content: "Regular maintenance schedule includes: 5,000 miles - oil change and tire rotation; 15,000 miles - oil change, tire rotation, and air filter; 30,000 miles - major service including transmission fluid, coolant, brake fluid, and full inspection; 60,000 miles - timing belt replacement (if applicable), spark plugs, and comprehensive service; 90,000 miles - full major service with all fluids and filters.",
			Metadata: map[string]any{
				"title":    "Maintenance Schedule",
				"category": "maintenance",
				"tags":     []string{"schedule", "maintenance", "service", "intervals"},
				"source":   "service_guide",
			},
		},
		{
			ID:      "warranty-coverage-1",
			Content: "Our service warranty covers most repairs for 12 months or 12,000 miles, whichever comes first. This includes parts and labor. Extended warranties are available for major repairs like engine or transmission work. Warranty does not cover normal wear items like brake pads, tires, or wiper blades. All warranty work must be performed at our facility.",
			Metadata: map[string]any{
				"title":    "Warranty Coverage",
				"category": "information",
				"tags":     []string{"warranty", "coverage", "guarantee", "protection"},
				"source":   "policy_guide",
			},
		},
		{
			ID:      "pricing-guide-1",
			Content: "Service pricing guide: Oil Change $49-89, Brake Service $199-450, Tire Rotation $25-50, Diagnostic Scan $89, Battery Replacement $100-200, Transmission Service $150-350, Coolant Flush $80-150, Air Filter Replacement $20-40, Cabin Filter $25-50, Spark Plugs $80-200, Timing Belt $400-900. Prices vary by vehicle make and model.",
			Metadata: map[string]any{
				"title":    "Pricing Guide",
				"category": "pricing",
				"tags":     []string{"price", "cost", "fees", "rates"},
				"source":   "pricing_guide",
			},
		},
		{
			ID:      "booking-process-1",
			Content: "Booking an appointment is easy through our online system or chatbot. Select your desired service, choose an available date and time, provide your vehicle information and contact details, and receive instant confirmation. We offer same-day appointments for urgent repairs. You can reschedule or cancel up to 2 hours before your appointment.",
			Metadata: map[string]any{
				"title":    "Booking Process",
				"category": "booking",
				"tags":     []string{"booking", "appointment", "schedule", "reservation"},
				"source":   "customer_guide",
			},
		},
	}
}
