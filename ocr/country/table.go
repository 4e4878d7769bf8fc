package country

// isoTable is ISO 3166-1: English short name, alpha-2, alpha-3.
var isoTable = []Record{
	{Name: "Afghanistan", Alpha2: "AF", Alpha3: "AFG"},
	{Name: "Åland Islands", Alpha2: "AX", Alpha3: "ALA"},
	{Name: "Albania", Alpha2: "AL", Alpha3: "ALB"},
	{Name: "Algeria", Alpha2: "DZ", Alpha3: "DZA"},
	{Name: "American Samoa", Alpha2: "AS", Alpha3: "ASM"},
	{Name: "Andorra", Alpha2: "AD", Alpha3: "AND"},
	{Name: "Angola", Alpha2: "AO", Alpha3: "AGO"},
	{Name: "Anguilla", Alpha2: "AI", Alpha3: "AIA"},
	{Name: "Antarctica", Alpha2: "AQ", Alpha3: "ATA"},
	{Name: "Antigua and Barbuda", Alpha2: "AG", Alpha3: "ATG"},
	{Name: "Argentina", Alpha2: "AR", Alpha3: "ARG"},
	{Name: "Armenia", Alpha2: "AM", Alpha3: "ARM"},
	{Name: "Aruba", Alpha2: "AW", Alpha3: "ABW"},
	{Name: "Australia", Alpha2: "AU", Alpha3: "AUS"},
	{Name: "Austria", Alpha2: "AT", Alpha3: "AUT"},
	{Name: "Azerbaijan", Alpha2: "AZ", Alpha3: "AZE"},
	{Name: "Bahamas", Alpha2: "BS", Alpha3: "BHS"},
	{Name: "Bahrain", Alpha2: "BH", Alpha3: "BHR"},
	{Name: "Bangladesh", Alpha2: "BD", Alpha3: "BGD"},
	{Name: "Barbados", Alpha2: "BB", Alpha3: "BRB"},
	{Name: "Belarus", Alpha2: "BY", Alpha3: "BLR"},
	{Name: "Belgium", Alpha2: "BE", Alpha3: "BEL"},
	{Name: "Belize", Alpha2: "BZ", Alpha3: "BLZ"},
	{Name: "Benin", Alpha2: "BJ", Alpha3: "BEN"},
	{Name: "Bermuda", Alpha2: "BM", Alpha3: "BMU"},
	{Name: "Bhutan", Alpha2: "BT", Alpha3: "BTN"},
	{Name: "Bolivia", Alpha2: "BO", Alpha3: "BOL"},
	{Name: "Bonaire, Sint Eustatius and Saba", Alpha2: "BQ", Alpha3: "BES"},
	{Name: "Bosnia and Herzegovina", Alpha2: "BA", Alpha3: "BIH"},
	{Name: "Botswana", Alpha2: "BW", Alpha3: "BWA"},
	{Name: "Bouvet Island", Alpha2: "BV", Alpha3: "BVT"},
	{Name: "Brazil", Alpha2: "BR", Alpha3: "BRA"},
	{Name: "British Indian Ocean Territory", Alpha2: "IO", Alpha3: "IOT"},
	{Name: "Brunei Darussalam", Alpha2: "BN", Alpha3: "BRN"},
	{Name: "Bulgaria", Alpha2: "BG", Alpha3: "BGR"},
	{Name: "Burkina Faso", Alpha2: "BF", Alpha3: "BFA"},
	{Name: "Burundi", Alpha2: "BI", Alpha3: "BDI"},
	{Name: "Cabo Verde", Alpha2: "CV", Alpha3: "CPV"},
	{Name: "Cambodia", Alpha2: "KH", Alpha3: "KHM"},
	{Name: "Cameroon", Alpha2: "CM", Alpha3: "CMR"},
	{Name: "Canada", Alpha2: "CA", Alpha3: "CAN"},
	{Name: "Cayman Islands", Alpha2: "KY", Alpha3: "CYM"},
	{Name: "Central African Republic", Alpha2: "CF", Alpha3: "CAF"},
	{Name: "Chad", Alpha2: "TD", Alpha3: "TCD"},
	{Name: "Chile", Alpha2: "CL", Alpha3: "CHL"},
	{Name: "China", Alpha2: "CN", Alpha3: "CHN"},
	{Name: "Christmas Island", Alpha2: "CX", Alpha3: "CXR"},
	{Name: "Cocos (Keeling) Islands", Alpha2: "CC", Alpha3: "CCK"},
	{Name: "Colombia", Alpha2: "CO", Alpha3: "COL"},
	{Name: "Comoros", Alpha2: "KM", Alpha3: "COM"},
	{Name: "Congo", Alpha2: "CG", Alpha3: "COG"},
	{Name: "Congo, Democratic Republic of the", Alpha2: "CD", Alpha3: "COD"},
	{Name: "Cook Islands", Alpha2: "CK", Alpha3: "COK"},
	{Name: "Costa Rica", Alpha2: "CR", Alpha3: "CRI"},
	{Name: "Côte d'Ivoire", Alpha2: "CI", Alpha3: "CIV"},
	{Name: "Croatia", Alpha2: "HR", Alpha3: "HRV"},
	{Name: "Cuba", Alpha2: "CU", Alpha3: "CUB"},
	{Name: "Curaçao", Alpha2: "CW", Alpha3: "CUW"},
	{Name: "Cyprus", Alpha2: "CY", Alpha3: "CYP"},
	{Name: "Czechia", Alpha2: "CZ", Alpha3: "CZE"},
	{Name: "Denmark", Alpha2: "DK", Alpha3: "DNK"},
	{Name: "Djibouti", Alpha2: "DJ", Alpha3: "DJI"},
	{Name: "Dominica", Alpha2: "DM", Alpha3: "DMA"},
	{Name: "Dominican Republic", Alpha2: "DO", Alpha3: "DOM"},
	{Name: "Ecuador", Alpha2: "EC", Alpha3: "ECU"},
	{Name: "Egypt", Alpha2: "EG", Alpha3: "EGY"},
	{Name: "El Salvador", Alpha2: "SV", Alpha3: "SLV"},
	{Name: "Equatorial Guinea", Alpha2: "GQ", Alpha3: "GNQ"},
	{Name: "Eritrea", Alpha2: "ER", Alpha3: "ERI"},
	{Name: "Estonia", Alpha2: "EE", Alpha3: "EST"},
	{Name: "Eswatini", Alpha2: "SZ", Alpha3: "SWZ"},
	{Name: "Ethiopia", Alpha2: "ET", Alpha3: "ETH"},
	{Name: "Falkland Islands (Malvinas)", Alpha2: "FK", Alpha3: "FLK"},
	{Name: "Faroe Islands", Alpha2: "FO", Alpha3: "FRO"},
	{Name: "Fiji", Alpha2: "FJ", Alpha3: "FJI"},
	{Name: "Finland", Alpha2: "FI", Alpha3: "FIN"},
	{Name: "France", Alpha2: "FR", Alpha3: "FRA"},
	{Name: "French Guiana", Alpha2: "GF", Alpha3: "GUF"},
	{Name: "French Polynesia", Alpha2: "PF", Alpha3: "PYF"},
	{Name: "French Southern Territories", Alpha2: "TF", Alpha3: "ATF"},
	{Name: "Gabon", Alpha2: "GA", Alpha3: "GAB"},
	{Name: "Gambia", Alpha2: "GM", Alpha3: "GMB"},
	{Name: "Georgia", Alpha2: "GE", Alpha3: "GEO"},
	{Name: "Germany", Alpha2: "DE", Alpha3: "DEU"},
	{Name: "Ghana", Alpha2: "GH", Alpha3: "GHA"},
	{Name: "Gibraltar", Alpha2: "GI", Alpha3: "GIB"},
	{Name: "Greece", Alpha2: "GR", Alpha3: "GRC"},
	{Name: "Greenland", Alpha2: "GL", Alpha3: "GRL"},
	{Name: "Grenada", Alpha2: "GD", Alpha3: "GRD"},
	{Name: "Guadeloupe", Alpha2: "GP", Alpha3: "GLP"},
	{Name: "Guam", Alpha2: "GU", Alpha3: "GUM"},
	{Name: "Guatemala", Alpha2: "GT", Alpha3: "GTM"},
	{Name: "Guernsey", Alpha2: "GG", Alpha3: "GGY"},
	{Name: "Guinea", Alpha2: "GN", Alpha3: "GIN"},
	{Name: "Guinea-Bissau", Alpha2: "GW", Alpha3: "GNB"},
	{Name: "Guyana", Alpha2: "GY", Alpha3: "GUY"},
	{Name: "Haiti", Alpha2: "HT", Alpha3: "HTI"},
	{Name: "Heard Island and McDonald Islands", Alpha2: "HM", Alpha3: "HMD"},
	{Name: "Holy See", Alpha2: "VA", Alpha3: "VAT"},
	{Name: "Honduras", Alpha2: "HN", Alpha3: "HND"},
	{Name: "Hong Kong", Alpha2: "HK", Alpha3: "HKG"},
	{Name: "Hungary", Alpha2: "HU", Alpha3: "HUN"},
	{Name: "Iceland", Alpha2: "IS", Alpha3: "ISL"},
	{Name: "India", Alpha2: "IN", Alpha3: "IND"},
	{Name: "Indonesia", Alpha2: "ID", Alpha3: "IDN"},
	{Name: "Iran", Alpha2: "IR", Alpha3: "IRN"},
	{Name: "Iraq", Alpha2: "IQ", Alpha3: "IRQ"},
	{Name: "Ireland", Alpha2: "IE", Alpha3: "IRL"},
	{Name: "Isle of Man", Alpha2: "IM", Alpha3: "IMN"},
	{Name: "Israel", Alpha2: "IL", Alpha3: "ISR"},
	{Name: "Italy", Alpha2: "IT", Alpha3: "ITA"},
	{Name: "Jamaica", Alpha2: "JM", Alpha3: "JAM"},
	{Name: "Japan", Alpha2: "JP", Alpha3: "JPN"},
	{Name: "Jersey", Alpha2: "JE", Alpha3: "JEY"},
	{Name: "Jordan", Alpha2: "JO", Alpha3: "JOR"},
	{Name: "Kazakhstan", Alpha2: "KZ", Alpha3: "KAZ"},
	{Name: "Kenya", Alpha2: "KE", Alpha3: "KEN"},
	{Name: "Kiribati", Alpha2: "KI", Alpha3: "KIR"},
	{Name: "Korea, Democratic People's Republic of", Alpha2: "KP", Alpha3: "PRK"},
	{Name: "Korea, Republic of", Alpha2: "KR", Alpha3: "KOR"},
	{Name: "Kuwait", Alpha2: "KW", Alpha3: "KWT"},
	{Name: "Kyrgyzstan", Alpha2: "KG", Alpha3: "KGZ"},
	{Name: "Lao People's Democratic Republic", Alpha2: "LA", Alpha3: "LAO"},
	{Name: "Latvia", Alpha2: "LV", Alpha3: "LVA"},
	{Name: "Lebanon", Alpha2: "LB", Alpha3: "LBN"},
	{Name: "Lesotho", Alpha2: "LS", Alpha3: "LSO"},
	{Name: "Liberia", Alpha2: "LR", Alpha3: "LBR"},
	{Name: "Libya", Alpha2: "LY", Alpha3: "LBY"},
	{Name: "Liechtenstein", Alpha2: "LI", Alpha3: "LIE"},
	{Name: "Lithuania", Alpha2: "LT", Alpha3: "LTU"},
	{Name: "Luxembourg", Alpha2: "LU", Alpha3: "LUX"},
	{Name: "Macao", Alpha2: "MO", Alpha3: "MAC"},
	{Name: "Madagascar", Alpha2: "MG", Alpha3: "MDG"},
	{Name: "Malawi", Alpha2: "MW", Alpha3: "MWI"},
	{Name: "Malaysia", Alpha2: "MY", Alpha3: "MYS"},
	{Name: "Maldives", Alpha2: "MV", Alpha3: "MDV"},
	{Name: "Mali", Alpha2: "ML", Alpha3: "MLI"},
	{Name: "Malta", Alpha2: "MT", Alpha3: "MLT"},
	{Name: "Marshall Islands", Alpha2: "MH", Alpha3: "MHL"},
	{Name: "Martinique", Alpha2: "MQ", Alpha3: "MTQ"},
	{Name: "Mauritania", Alpha2: "MR", Alpha3: "MRT"},
	{Name: "Mauritius", Alpha2: "MU", Alpha3: "MUS"},
	{Name: "Mayotte", Alpha2: "YT", Alpha3: "MYT"},
	{Name: "Mexico", Alpha2: "MX", Alpha3: "MEX"},
	{Name: "Micronesia", Alpha2: "FM", Alpha3: "FSM"},
	{Name: "Moldova", Alpha2: "MD", Alpha3: "MDA"},
	{Name: "Monaco", Alpha2: "MC", Alpha3: "MCO"},
	{Name: "Mongolia", Alpha2: "MN", Alpha3: "MNG"},
	{Name: "Montenegro", Alpha2: "ME", Alpha3: "MNE"},
	{Name: "Montserrat", Alpha2: "MS", Alpha3: "MSR"},
	{Name: "Morocco", Alpha2: "MA", Alpha3: "MAR"},
	{Name: "Mozambique", Alpha2: "MZ", Alpha3: "MOZ"},
	{Name: "Myanmar", Alpha2: "MM", Alpha3: "MMR"},
	{Name: "Namibia", Alpha2: "NA", Alpha3: "NAM"},
	{Name: "Nauru", Alpha2: "NR", Alpha3: "NRU"},
	{Name: "Nepal", Alpha2: "NP", Alpha3: "NPL"},
	{Name: "Netherlands", Alpha2: "NL", Alpha3: "NLD"},
	{Name: "New Caledonia", Alpha2: "NC", Alpha3: "NCL"},
	{Name: "New Zealand", Alpha2: "NZ", Alpha3: "NZL"},
	{Name: "Nicaragua", Alpha2: "NI", Alpha3: "NIC"},
	{Name: "Niger", Alpha2: "NE", Alpha3: "NER"},
	{Name: "Nigeria", Alpha2: "NG", Alpha3: "NGA"},
	{Name: "Niue", Alpha2: "NU", Alpha3: "NIU"},
	{Name: "Norfolk Island", Alpha2: "NF", Alpha3: "NFK"},
	{Name: "North Macedonia", Alpha2: "MK", Alpha3: "MKD"},
	{Name: "Northern Mariana Islands", Alpha2: "MP", Alpha3: "MNP"},
	{Name: "Norway", Alpha2: "NO", Alpha3: "NOR"},
	{Name: "Oman", Alpha2: "OM", Alpha3: "OMN"},
	{Name: "Pakistan", Alpha2: "PK", Alpha3: "PAK"},
	{Name: "Palau", Alpha2: "PW", Alpha3: "PLW"},
	{Name: "Palestine, State of", Alpha2: "PS", Alpha3: "PSE"},
	{Name: "Panama", Alpha2: "PA", Alpha3: "PAN"},
	{Name: "Papua New Guinea", Alpha2: "PG", Alpha3: "PNG"},
	{Name: "Paraguay", Alpha2: "PY", Alpha3: "PRY"},
	{Name: "Peru", Alpha2: "PE", Alpha3: "PER"},
	{Name: "Philippines", Alpha2: "PH", Alpha3: "PHL"},
	{Name: "Pitcairn", Alpha2: "PN", Alpha3: "PCN"},
	{Name: "Poland", Alpha2: "PL", Alpha3: "POL"},
	{Name: "Portugal", Alpha2: "PT", Alpha3: "PRT"},
	{Name: "Puerto Rico", Alpha2: "PR", Alpha3: "PRI"},
	{Name: "Qatar", Alpha2: "QA", Alpha3: "QAT"},
	{Name: "Réunion", Alpha2: "RE", Alpha3: "REU"},
	{Name: "Romania", Alpha2: "RO", Alpha3: "ROU"},
	{Name: "Russian Federation", Alpha2: "RU", Alpha3: "RUS"},
	{Name: "Rwanda", Alpha2: "RW", Alpha3: "RWA"},
	{Name: "Saint Barthélemy", Alpha2: "BL", Alpha3: "BLM"},
	{Name: "Saint Helena, Ascension and Tristan da Cunha", Alpha2: "SH", Alpha3: "SHN"},
	{Name: "Saint Kitts and Nevis", Alpha2: "KN", Alpha3: "KNA"},
	{Name: "Saint Lucia", Alpha2: "LC", Alpha3: "LCA"},
	{Name: "Saint Martin (French part)", Alpha2: "MF", Alpha3: "MAF"},
	{Name: "Saint Pierre and Miquelon", Alpha2: "PM", Alpha3: "SPM"},
	{Name: "Saint Vincent and the Grenadines", Alpha2: "VC", Alpha3: "VCT"},
	{Name: "Samoa", Alpha2: "WS", Alpha3: "WSM"},
	{Name: "San Marino", Alpha2: "SM", Alpha3: "SMR"},
	{Name: "Sao Tome and Principe", Alpha2: "ST", Alpha3: "STP"},
	{Name: "Saudi Arabia", Alpha2: "SA", Alpha3: "SAU"},
	{Name: "Senegal", Alpha2: "SN", Alpha3: "SEN"},
	{Name: "Serbia", Alpha2: "RS", Alpha3: "SRB"},
	{Name: "Seychelles", Alpha2: "SC", Alpha3: "SYC"},
	{Name: "Sierra Leone", Alpha2: "SL", Alpha3: "SLE"},
	{Name: "Singapore", Alpha2: "SG", Alpha3: "SGP"},
	{Name: "Sint Maarten (Dutch part)", Alpha2: "SX", Alpha3: "SXM"},
	{Name: "Slovakia", Alpha2: "SK", Alpha3: "SVK"},
	{Name: "Slovenia", Alpha2: "SI", Alpha3: "SVN"},
	{Name: "Solomon Islands", Alpha2: "SB", Alpha3: "SLB"},
	{Name: "Somalia", Alpha2: "SO", Alpha3: "SOM"},
	{Name: "South Africa", Alpha2: "ZA", Alpha3: "ZAF"},
	{Name: "South Georgia and the South Sandwich Islands", Alpha2: "GS", Alpha3: "SGS"},
	{Name: "South Sudan", Alpha2: "SS", Alpha3: "SSD"},
	{Name: "Spain", Alpha2: "ES", Alpha3: "ESP"},
	{Name: "Sri Lanka", Alpha2: "LK", Alpha3: "LKA"},
	{Name: "Sudan", Alpha2: "SD", Alpha3: "SDN"},
	{Name: "Suriname", Alpha2: "SR", Alpha3: "SUR"},
	{Name: "Svalbard and Jan Mayen", Alpha2: "SJ", Alpha3: "SJM"},
	{Name: "Sweden", Alpha2: "SE", Alpha3: "SWE"},
	{Name: "Switzerland", Alpha2: "CH", Alpha3: "CHE"},
	{Name: "Syrian Arab Republic", Alpha2: "SY", Alpha3: "SYR"},
	{Name: "Taiwan", Alpha2: "TW", Alpha3: "TWN"},
	{Name: "Tajikistan", Alpha2: "TJ", Alpha3: "TJK"},
	{Name: "Tanzania, United Republic of", Alpha2: "TZ", Alpha3: "TZA"},
	{Name: "Thailand", Alpha2: "TH", Alpha3: "THA"},
	{Name: "Timor-Leste", Alpha2: "TL", Alpha3: "TLS"},
	{Name: "Togo", Alpha2: "TG", Alpha3: "TGO"},
	{Name: "Tokelau", Alpha2: "TK", Alpha3: "TKL"},
	{Name: "Tonga", Alpha2: "TO", Alpha3: "TON"},
	{Name: "Trinidad and Tobago", Alpha2: "TT", Alpha3: "TTO"},
	{Name: "Tunisia", Alpha2: "TN", Alpha3: "TUN"},
	{Name: "Türkiye", Alpha2: "TR", Alpha3: "TUR"},
	{Name: "Turkmenistan", Alpha2: "TM", Alpha3: "TKM"},
	{Name: "Turks and Caicos Islands", Alpha2: "TC", Alpha3: "TCA"},
	{Name: "Tuvalu", Alpha2: "TV", Alpha3: "TUV"},
	{Name: "Uganda", Alpha2: "UG", Alpha3: "UGA"},
	{Name: "Ukraine", Alpha2: "UA", Alpha3: "UKR"},
	{Name: "United Arab Emirates", Alpha2: "AE", Alpha3: "ARE"},
	{Name: "United Kingdom", Alpha2: "GB", Alpha3: "GBR"},
	{Name: "United States", Alpha2: "US", Alpha3: "USA"},
	{Name: "United States Minor Outlying Islands", Alpha2: "UM", Alpha3: "UMI"},
	{Name: "Uruguay", Alpha2: "UY", Alpha3: "URY"},
	{Name: "Uzbekistan", Alpha2: "UZ", Alpha3: "UZB"},
	{Name: "Vanuatu", Alpha2: "VU", Alpha3: "VUT"},
	{Name: "Venezuela", Alpha2: "VE", Alpha3: "VEN"},
	{Name: "Viet Nam", Alpha2: "VN", Alpha3: "VNM"},
	{Name: "Virgin Islands (British)", Alpha2: "VG", Alpha3: "VGB"},
	{Name: "Virgin Islands (U.S.)", Alpha2: "VI", Alpha3: "VIR"},
	{Name: "Wallis and Futuna", Alpha2: "WF", Alpha3: "WLF"},
	{Name: "Western Sahara", Alpha2: "EH", Alpha3: "ESH"},
	{Name: "Yemen", Alpha2: "YE", Alpha3: "YEM"},
	{Name: "Zambia", Alpha2: "ZM", Alpha3: "ZMB"},
	{Name: "Zimbabwe", Alpha2: "ZW", Alpha3: "ZWE"},
}

// extraAlpha3 covers codes that appear in machine readable travel documents
// but are not ISO 3166-1 country entries.
var extraAlpha3 = map[string]string{
	"D":   "DEU",
	"GBD": "GBR",
	"GBN": "GBR",
	"GBO": "GBR",
	"GBS": "GBR",
	"GBP": "GBR",
}
