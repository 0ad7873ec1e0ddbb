package customer

var genderCodes = map[string]string{
	"female": "F",
	"male":   "M",
}

var employmentCodes = map[string]string{
	"unemployed": "0",
	"employed":   "1",
}

var educationCodes = map[string]string{
	"bachelors_degree":                  "Bachelor's Degree",
	"graduate_or_professional_degree":   "Graduate or Professional Degree",
	"high_school_graduate":              "High School Graduate",
	"less_than_high_school_diploma":     "Less than High School Diploma",
	"some_college_or_associates_degree": "Some College or Associate's Degree",
}

var industryCodes = map[string]string{
	"agriculture_forestry_fishing_mining":                       "Agriculture, Forestry, Fishing, Mining",
	"arts_entertainment_recreation_accommodation_food_services": "Arts, Entertainment, Recreation, Accommodation, Food Services",
	"construction": "Construction",
	"educational_services_health_care_social_assistance": "Educational Services, Health Care, Social Assistance",
	"finance_insurance_real_estate":                      "Finance, Insurance, Real Estate",
	"information":                                        "Information",
	"manufacturing":                                      "Manufacturing",
	"other_services":                                     "Other Services",
	"professional_scientific_management":                 "Professional, Scientific, Management",
	"public_administration":                              "Public Administration",
	"retail_trade":                                       "Retail Trade",
	"transportation_warehousing_utilities":               "Transportation, Warehousing, Utilities",
	"wholesale_trade":                                    "Wholesale Trade",
}

var occupationCodes = map[string]string{
	"management_business_science_arts":           "Management, Business, Science, and Arts",
	"natural_resources_construction_maintenance": "Natural Resources, Construction, and Maintenance",
	"production_transportation_material_moving":  "Production, Transportation, and Material Moving",
	"sales_and_office_occupations":               "Sales and Office Occupations",
	"service_occupations":                        "Service Occupations",
}
